package agent

import (
	"context"
	"fmt"

	"github.com/etnz/inventory"
	"github.com/etnz/inventory/date"
	"github.com/etnz/inventory/docs"
	"github.com/etnz/inventory/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The user runs a small shop: they want to know about their stock, what sells and
			what to reorder. Devise a plan of questions to ask to each expert and come up with
			the best response to the user's request, in markdown.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewClerk returns the expert in charge of reading the ledger l.
func NewClerk(l *inventory.Ledger) *Expert {
	lib := ClerkFunctions(l)
	return &Expert{
		Name: "Clerk",
		Description: `This is the Clerk. They know the shop's inventory ledger: products in stock,
		prices, categories and every sale made. Ask the Clerk for any figure about the stock or the sales.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the clerk of a small shop, in charge of its inventory ledger.
				Use the available tools to answer questions about
				  - the dashboard: stock value, low stock, sales of the day
				  - products, searched by name or category
				  - sales over a period
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// ClerkFunctions returns the functions reading l available to the Clerk.
func ClerkFunctions(l *inventory.Ledger) []*Func {
	return []*Func{
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Dashboard",
				Description: "Dashboard returns the number of products, the stock value, the count of products low on stock, the total sales and the sales of today.",
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown table of the dashboard figures.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return outputResponse(id, "Dashboard", renderer.Dashboard(l.Aggregates(), l.Currency(), l.Today()))
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "SearchProducts",
				Description: "SearchProducts lists the products whose name contains a text, optionally in a single category.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"search": {
							Type:        genai.TypeString,
							Description: "Case insensitive text to find in the product name. Empty matches all products.",
						},
						"category": {
							Type:        genai.TypeString,
							Description: "Exact category of the products. Empty matches all categories.",
						},
					},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown table of the matching products with their price, quantity and value.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				search, _ := args["search"].(string)
				category, _ := args["category"].(string)
				return outputResponse(id, "SearchProducts", renderer.Products(l.Filter(search, category), l.Currency()))
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "SalesReport",
				Description: "SalesReport summarizes the sales over a period: total, items sold, sales by product and by day.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"period": {
							Type:        genai.TypeString,
							Description: "The period of the report: day, week, month, quarter or year. Defaults to month.",
						},
						"date": {
							Type: genai.TypeString,
							Description: `A day in the period, today is the default. It uses a flexible date format:

							` + must(docs.GetTopic("dates")),
						},
					},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown sales report.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				r, err := periodRange(l.Today(), args)
				if err != nil {
					return errorResponse(id, "SalesReport", err)
				}
				return outputResponse(id, "SalesReport", renderer.SalesReport(l.NewSalesReport(r)))
			},
		},
	}
}

// periodRange reads the optional "period" and "date" arguments.
func periodRange(today date.Date, args map[string]any) (date.Range, error) {
	period := date.Monthly
	if p, _ := args["period"].(string); p != "" {
		var err error
		if period, err = date.ParsePeriod(p); err != nil {
			return date.Range{}, err
		}
	}
	on := today
	if d, _ := args["date"].(string); d != "" {
		var err error
		if on, err = date.ParseFrom(d, today); err != nil {
			return date.Range{}, fmt.Errorf("invalid date %q: %w", d, err)
		}
	}
	return date.NewRange(on, period), nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
