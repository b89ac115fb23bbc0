package components

import (
	"log"

	"github.com/bytedance/sonic"
)

// JSON marshals an object to a JSON string, returning "{}" on error
func JSON(v interface{}) string {
	s, err := sonic.MarshalString(v)
	if err != nil {
		log.Printf("[WARNING] Error marshaling JSON: %v", err)
		return "{}"
	}
	return s
}
