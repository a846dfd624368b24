package agent

import (
	"context"
	"fmt"
	"os"

	"github.com/etnz/cgt"
	"github.com/etnz/cgt/docs"
	"github.com/etnz/cgt/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
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

			Learn about the expert's skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here to understand their UK capital gains tax computation: which rule matched a sale,
			why the allowable cost is what it is, what they will owe for a tax year.
			Never give personal tax planning advice, only explain the computation and the rules behind it.

			Devise a plan of questions for the experts and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAdviser returns the expert grounding answers about HMRC rules in a
// search.
func NewAdviser() *Expert {
	return &Expert{
		Name: "Adviser",
		Description: `This is an expert on UK capital gains tax rules and HMRC guidance.
		Aware of the share identification rules, the annual exempt amounts and their history,
		and the reporting obligations. Ask the Adviser whenever you need authoritative or
		recent information about the rules themselves.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in UK capital gains tax. You leverage Google Search to ground
			your assertions about HMRC rules, rates and allowances in authoritative sources,
			preferring gov.uk. You explain rules, you never give personal tax planning advice.
				`}}},
		},
	}
}

// NewAnalyst returns the expert that can actually run the calculation over
// the user's transaction file and read the documentation topics.
func NewAnalyst(transactionsFile string) *Expert {
	lib := []Function{reportFunc(transactionsFile), topicFunc()}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It runs the capital gains calculation over the user's
		own transaction file and reads the calculator's documentation. Ask the Analyst for the
		user's actual figures: disposals, matched rules, allowable costs, per tax year summaries.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's capital gains computation.
				Use the Report tool to get the user's actual figures and the Topic tool to
				read how the calculator applies the rules. Quote figures exactly as reported,
				never recompute them yourself.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

// reportFunc exposes the full calculation over the user's transaction file.
func reportFunc(transactionsFile string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Report",
			Description: `Report runs the capital gains calculation over the user's transaction file
			and returns the full report: every disposal with the rule that matched it, and one
			summary per tax year with the taxable gain.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown document with the per tax year table and the disposal table.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			report, err := computeReport(transactionsFile)
			if err != nil {
				return errResponse(id, "Report", err)
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Report",
				Response: map[string]any{
					"output": renderer.ReportMarkdown(report),
				},
			}
		},
	}
}

// topicFunc exposes the documentation topics.
func topicFunc() *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Topic",
			Description: `Topic returns the calculator's documentation about one subject.
			Available topics: matching, pooling, taxyears, importing. Use '*' for all of them.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic": {
						Type:        genai.TypeString,
						Description: "The topic name, or '*' for every topic.",
					},
				},
				Required: []string{"topic"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The markdown content of the topic.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			topic, ok := args["topic"].(string)
			if !ok {
				return errResponse(id, "Topic", fmt.Errorf("argument 'topic' is not a string but %T", args["topic"]))
			}
			content, err := docs.GetTopic(topic)
			if err != nil {
				return errResponse(id, "Topic", err)
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Topic",
				Response: map[string]any{
					"output": content,
				},
			}
		},
	}
}

// computeReport imports the transaction file and runs the calculation with
// the default exempt amounts.
func computeReport(transactionsFile string) (*cgt.Report, error) {
	f, err := os.Open(transactionsFile)
	if err != nil {
		return nil, fmt.Errorf("could not open transactions file %q: %w", transactionsFile, err)
	}
	defer f.Close()

	txs, err := cgt.ImportTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("could not import transactions from %q: %w", transactionsFile, err)
	}
	c := &cgt.Calculator{}
	return c.Calculate(txs)
}
