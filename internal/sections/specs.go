package sections

import (
	"strings"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
)

// Spec carries the extraction prompt and expected top-level field names for
// one section. Fields drive shape validation of agent output; an empty
// Fields list accepts any object.
type Spec struct {
	Name   string
	Prompt string
	Fields []string
}

// Validate reports whether extracted data conforms to the expected shape:
// an object carrying at least one of the expected fields. Parsed scalars and
// arrays fail validation because every report section is an object of named
// figures.
func (s Spec) Validate(v payload.Value) bool {
	if v.Kind() != payload.KindObject {
		return false
	}
	if len(s.Fields) == 0 {
		return true
	}
	for _, f := range s.Fields {
		if _, ok := v.Field(f); ok {
			return true
		}
	}
	return false
}

// SpecFor returns the extraction spec for a section, falling back to a
// generic key/value prompt for unrecognized section names.
func SpecFor(name string) Spec {
	if spec, ok := specs[name]; ok {
		return spec
	}
	return Spec{
		Name: name,
		Prompt: "Extract all named figures and facts from the \"" + name +
			"\" section of this annual report. " + outputContract,
	}
}

const outputContract = "Respond with a single JSON object. Use snake_case keys, " +
	"plain numbers without thousands separators or currency units, and null for " +
	"values not present on these pages. Do not invent values."

var specs = map[string]Spec{
	"governance": {
		Name: "governance",
		Prompt: "These pages contain the governance section of a housing " +
			"association annual report. Extract the chairman, the board members " +
			"with their roles, the auditor and audit firm, the nomination " +
			"committee, and the number of board meetings held. " + outputContract,
		Fields: []string{"chairman", "board_members", "auditor", "audit_firm", "nomination_committee", "board_meetings"},
	},
	"income_statement": {
		Name: "income_statement",
		Prompt: "These pages contain the income statement. Extract total revenue, " +
			"operating costs, operating result, financial income, financial costs, " +
			"and result for the year, for the current fiscal year. " + outputContract,
		Fields: []string{"total_revenue", "operating_costs", "operating_result", "financial_income", "financial_costs", "result_for_year"},
	},
	"balance_sheet": {
		Name: "balance_sheet",
		Prompt: "These pages contain the balance sheet. Extract total assets, " +
			"total liabilities, total equity, current assets, fixed assets, " +
			"long-term liabilities, and short-term liabilities for the current " +
			"fiscal year. " + outputContract,
		Fields: []string{"total_assets", "total_liabilities", "total_equity", "current_assets", "fixed_assets", "long_term_liabilities", "short_term_liabilities"},
	},
	"cash_flow": {
		Name: "cash_flow",
		Prompt: "These pages contain the cash flow statement. Extract cash flow " +
			"from operations, from investments, from financing, and the change in " +
			"liquid funds. " + outputContract,
		Fields: []string{"operations", "investments", "financing", "change_in_liquidity"},
	},
	"property": {
		Name: "property",
		Prompt: "These pages describe the association's property. Extract the " +
			"property designation, municipality, year built, total living area in " +
			"square meters, number of apartments, and number of commercial units. " +
			outputContract,
		Fields: []string{"designation", "municipality", "year_built", "living_area_sqm", "apartments", "commercial_units"},
	},
	"loans": {
		Name: "loans",
		Prompt: "These pages list the association's loans. Extract each loan with " +
			"lender, outstanding amount, interest rate, and maturity date, plus " +
			"the total outstanding debt. " + outputContract,
		Fields: []string{"loans", "total_debt"},
	},
	"fees": {
		Name: "fees",
		Prompt: "These pages state member fees. Extract the annual fee per square " +
			"meter, any fee change decided for the coming year, and the date the " +
			"change takes effect. " + outputContract,
		Fields: []string{"fee_per_sqm", "fee_change_percent", "fee_change_date"},
	},
}

// Normalize maps a sectionizer-produced heading to a canonical section name
// when one is recognized, lower-casing and squashing separators first.
func Normalize(heading string) string {
	key := strings.ToLower(strings.TrimSpace(heading))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if _, ok := specs[key]; ok {
		return key
	}
	return key
}
