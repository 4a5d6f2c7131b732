package services

import "math"

// Point is one step of a line chart. Pct is the height relative to the
// series maximum.
type Point struct {
	Name  string
	Value float64
	Pct   int
}

// Share is one slice of a distribution. Pct is its percentage of the total.
type Share struct {
	Name  string
	Value float64
	Pct   int
}

var conversionRates = []Point{
	{Name: "Jan", Value: 2.5}, {Name: "Feb", Value: 2.8}, {Name: "Mar", Value: 3.2},
	{Name: "Apr", Value: 3.5}, {Name: "May", Value: 3.1}, {Name: "Jun", Value: 3.0},
	{Name: "Jul", Value: 2.9}, {Name: "Aug", Value: 3.3}, {Name: "Sep", Value: 3.6},
	{Name: "Oct", Value: 3.8}, {Name: "Nov", Value: 4.0}, {Name: "Dec", Value: 4.2},
}

var salesByCategory = []Share{
	{Name: "Electronics", Value: 35},
	{Name: "Clothing", Value: 25},
	{Name: "Home & Kitchen", Value: 20},
	{Name: "Books", Value: 10},
	{Name: "Other", Value: 10},
}

var trafficSources = []Share{
	{Name: "Direct", Value: 40},
	{Name: "Organic Search", Value: 30},
	{Name: "Social Media", Value: 15},
	{Name: "Referral", Value: 10},
	{Name: "Email", Value: 5},
}

var reportCategories = []Share{
	{Name: "Power Tools", Value: 35},
	{Name: "Hand Tools", Value: 25},
	{Name: "Hardware", Value: 20},
	{Name: "Plumbing", Value: 10},
	{Name: "Electrical", Value: 10},
}

type ReportProduct struct {
	Rank     int
	Name     string
	Category string
	Sales    int
	Revenue  float64
	Pct      int
}

var reportProducts = []ReportProduct{
	{Name: "Power Drill - 18V", Category: "Power Tools", Sales: 156, Revenue: 12480},
	{Name: "Hammer - 16oz", Category: "Hand Tools", Sales: 142, Revenue: 2840},
	{Name: "Screwdriver Set - 12pc", Category: "Hand Tools", Sales: 137, Revenue: 4110},
	{Name: `Circular Saw - 7.25"`, Category: "Power Tools", Sales: 98, Revenue: 14700},
	{Name: "Measuring Tape - 25ft", Category: "Hand Tools", Sales: 95, Revenue: 1425},
	{Name: "Wrench Set - 10pc", Category: "Hand Tools", Sales: 87, Revenue: 3480},
	{Name: "Drill Bit Set - 29pc", Category: "Power Tools", Sales: 82, Revenue: 2460},
	{Name: `Pliers - 8"`, Category: "Hand Tools", Sales: 76, Revenue: 1140},
	{Name: "Nail Gun - Pneumatic", Category: "Power Tools", Sales: 68, Revenue: 8160},
	{Name: `Level - 48"`, Category: "Hand Tools", Sales: 65, Revenue: 1950},
}

// ReportLink is an entry of the detailed report catalogue.
type ReportLink struct {
	Title       string
	Description string
}

var reportCatalogue = []ReportLink{
	{Title: "Sales Summary", Description: "Complete sales breakdown by period"},
	{Title: "Inventory Valuation", Description: "Current value of all inventory items"},
	{Title: "Customer Acquisition", Description: "New customer growth and retention"},
	{Title: "Product Performance", Description: "Detailed analysis of product sales"},
	{Title: "Profit & Loss", Description: "Financial performance overview"},
	{Title: "Tax Report", Description: "Sales tax collected by jurisdiction"},
}

const (
	TabSales      = "sales"
	TabProducts   = "products"
	TabCustomers  = "customers"
	TabOverview   = "overview"
	TabCategories = "categories"
	TabDetailed   = "detailed"
)

var (
	AnalyticsTabs = []string{TabSales, TabProducts, TabCustomers}
	ReportTabs    = []string{TabOverview, TabProducts, TabCategories, TabDetailed}
	ReportTypes   = []string{"sales", "inventory", "customers"}
)

// Analytics is the analytics screen. Only the series of the selected tab
// are filled.
type Analytics struct {
	Tab        string
	Period     string
	Sales      []SalesPoint
	Conversion []Point
	Categories []Share
	Traffic    []Share
	Growth     []Point
}

func (s *AnalyticsService) Analytics(tab, period string) Analytics {
	a := Analytics{Tab: pick(tab, AnalyticsTabs)}
	switch a.Tab {
	case TabSales:
		a.Period, a.Sales = Sales(period)
		a.Conversion = Scale(conversionRates)
	case TabProducts:
		a.Categories = Shares(salesByCategory)
		a.Traffic = Shares(trafficSources)
	case TabCustomers:
		// new customers track monthly orders until the backend reports signups
		_, months := Sales(PeriodMonthly)
		growth := make([]Point, len(months))
		for i, m := range months {
			growth[i] = Point{Name: m.Name, Value: float64(m.Orders)}
		}
		a.Growth = Scale(growth)
	}
	return a
}

// Reports is the reports screen.
type Reports struct {
	Tab        string
	Type       string
	Period     string
	Sales      []SalesPoint
	Categories []Share
	Products   []ReportProduct
	Catalogue  []ReportLink
}

func (s *AnalyticsService) Reports(tab, kind, period string) Reports {
	r := Reports{Tab: pick(tab, ReportTabs), Type: pick(kind, ReportTypes)}
	r.Period, r.Sales = Sales(period)
	switch r.Tab {
	case TabOverview:
		r.Categories = Shares(reportCategories)
	case TabProducts:
		r.Products = rankProducts(reportProducts)
	case TabCategories:
		r.Categories = Shares(reportCategories)
	case TabDetailed:
		r.Catalogue = append([]ReportLink(nil), reportCatalogue...)
	}
	return r
}

// Shares fills each slice's percentage of the total. Rounding can make the
// percentages sum to 99 or 101.
func Shares(in []Share) []Share {
	out := append([]Share(nil), in...)
	var total float64
	for _, sh := range out {
		total += sh.Value
	}
	if total <= 0 {
		return out
	}
	for i := range out {
		out[i].Pct = int(math.Round(out[i].Value / total * 100))
	}
	return out
}

// Scale fills each point's height relative to the series maximum.
func Scale(in []Point) []Point {
	out := append([]Point(nil), in...)
	var best float64
	for _, p := range out {
		best = math.Max(best, p.Value)
	}
	if best <= 0 {
		return out
	}
	for i := range out {
		out[i].Pct = int(math.Round(out[i].Value / best * 100))
	}
	return out
}

func rankProducts(in []ReportProduct) []ReportProduct {
	out := append([]ReportProduct(nil), in...)
	var best int
	for _, p := range out {
		if p.Sales > best {
			best = p.Sales
		}
	}
	for i := range out {
		out[i].Rank = i + 1
		if best > 0 {
			out[i].Pct = int(math.Round(float64(out[i].Sales) / float64(best) * 100))
		}
	}
	return out
}

// pick returns v when it is one of allowed, else the first allowed value.
func pick(v string, allowed []string) string {
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return allowed[0]
}
