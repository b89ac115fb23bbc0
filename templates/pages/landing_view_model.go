package pages

import "morningful_landing_go/templates/layouts"

// Feature is one card of the features grid
type Feature struct {
	Slug    string
	Title   string
	Bullets []string
}

// Solution is one block of the solutions section
type Solution struct {
	Title       string
	Description string
	Bullets     []string
}

// Stat is one figure of the stats band
type Stat struct {
	Value string
	Label string
}

// Testimonial is one customer quote
type Testimonial struct {
	Name    string
	Role    string
	Company string
	Quote   string
}

// LandingViewModel holds the data for the landing page
type LandingViewModel struct {
	Page         layouts.Page
	Features     []Feature
	Solutions    []Solution
	Stats        []Stat
	Testimonials []Testimonial
}

// NewLandingViewModel returns the landing page content around page
func NewLandingViewModel(page layouts.Page) LandingViewModel {
	return LandingViewModel{
		Page: page,
		Features: []Feature{
			{Slug: "real_time_cash_flow", Title: "Real-Time Cash Flow", Bullets: []string{"Real-Time Monitoring", "Multi-Account View", "Instant Alerts"}},
			{Slug: "bank_level_security", Title: "Bank-Level Security", Bullets: []string{"SOC 2 in progress", "GDPR ready", "End-to-End Encryption"}},
			{Slug: "actionable_insights", Title: "Actionable Insights", Bullets: []string{"Spending Categories", "Revenue Streams", "Cost Analytics"}},
		},
		Solutions: []Solution{
			{
				Title:       "Cash Flow Management",
				Description: "Monitor inflows and outflows in real-time. Understand your cash conversion cycle and optimize working capital.",
				Bullets:     []string{"Real-time Balance Monitoring", "Cash Conversion Cycle", "Working Capital Optimization"},
			},
			{
				Title:       "Expense & Spend Control",
				Description: "Categorize spending automatically and identify areas for cost savings with detailed expense analytics and controls.",
				Bullets:     []string{"Automated Categorization", "Budget vs. Actuals", "Identify Savings"},
			},
		},
		Stats: []Stat{
			{Value: "$20M", Label: "Transactions Analyzed"},
			{Value: "99.98%", Label: "Data Accuracy"},
			{Value: "14+", Label: "Finance Teams Onboarded"},
			{Value: "10,000+", Label: "Banks Supported"},
		},
		Testimonials: []Testimonial{
			{Name: "Ido Genosar", Role: "CEO", Company: "Verobotics", Quote: "Morningful more than pays for itself. We've streamlined cash management and earned 9X more in interest."},
			{Name: "Shachar Kaufman", Role: "Founder", Company: "Zoma", Quote: "Every morning I open Morningful first, and it tells me exactly where the business stands in seconds."},
		},
	}
}
