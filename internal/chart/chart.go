// Package chart holds the static chart-of-accounts definition. The chart is
// the single source of truth for account codes, categories, normal balance
// sides and the system classification rules derived from them; classification
// only ever looks accounts up here, it never creates them at runtime.
package chart

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"github.com/autobooks/autobooks_app/internal/core/domain"
	"gopkg.in/yaml.v3"
)

//go:embed chart_of_accounts.yaml
var chartYAML []byte

// categoryDef is one category entry in the YAML document.
type categoryDef struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	NormalSide string `yaml:"normal_side"`
}

// ruleDef is one classification rule attached to an account definition.
type ruleDef struct {
	Pattern  string `yaml:"pattern"`
	Match    string `yaml:"match"` // CONTAINS (default), EXACT or PREFIX
	Priority int    `yaml:"priority"`
}

// accountDef is one account entry in the YAML document.
type accountDef struct {
	Code          string    `yaml:"code"`
	Name          string    `yaml:"name"`
	Category      string    `yaml:"category"`
	Bank          bool      `yaml:"bank"`
	OpeningOffset bool      `yaml:"opening_offset"`
	Rules         []ruleDef `yaml:"rules"`
}

type chartDoc struct {
	Categories []categoryDef `yaml:"categories"`
	Accounts   []accountDef  `yaml:"accounts"`
}

// Definition is the parsed, validated chart of accounts.
type Definition struct {
	categories  []domain.AccountCategory
	accounts    []accountDef
	byCode      map[string]accountDef
	categoryMap map[string]domain.AccountCategory
}

var (
	defaultOnce sync.Once
	defaultDef  *Definition
	defaultErr  error
)

// Default returns the embedded chart definition, parsed once.
func Default() (*Definition, error) {
	defaultOnce.Do(func() {
		defaultDef, defaultErr = Parse(chartYAML)
	})
	return defaultDef, defaultErr
}

// Parse reads and validates a chart document.
func Parse(data []byte) (*Definition, error) {
	var doc chartDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse chart document: %w", err)
	}

	def := &Definition{
		byCode:      make(map[string]accountDef, len(doc.Accounts)),
		categoryMap: make(map[string]domain.AccountCategory, len(doc.Categories)),
	}

	for _, c := range doc.Categories {
		side := domain.BalanceSide(c.NormalSide)
		if side != domain.DebitSide && side != domain.CreditSide {
			return nil, fmt.Errorf("category %s has invalid normal side %q", c.ID, c.NormalSide)
		}
		if _, dup := def.categoryMap[c.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %s", c.ID)
		}
		cat := domain.AccountCategory{CategoryID: c.ID, Name: c.Name, NormalSide: side}
		def.categoryMap[c.ID] = cat
		def.categories = append(def.categories, cat)
	}

	for _, a := range doc.Accounts {
		if a.Code == "" || a.Name == "" {
			return nil, fmt.Errorf("account with code %q is missing code or name", a.Code)
		}
		if _, dup := def.byCode[a.Code]; dup {
			return nil, fmt.Errorf("duplicate account code %s", a.Code)
		}
		if _, ok := def.categoryMap[a.Category]; !ok {
			return nil, fmt.Errorf("account %s references unknown category %s", a.Code, a.Category)
		}
		for _, r := range a.Rules {
			if r.Pattern == "" {
				return nil, fmt.Errorf("account %s has a rule with an empty pattern", a.Code)
			}
			switch r.Match {
			case "", string(domain.MatchContains), string(domain.MatchExact), string(domain.MatchPrefix):
			default:
				return nil, fmt.Errorf("account %s rule %q has invalid match type %q", a.Code, r.Pattern, r.Match)
			}
		}
		if a.OpeningOffset && len(a.Rules) > 0 {
			return nil, fmt.Errorf("opening-offset account %s must not carry classification rules", a.Code)
		}
		def.byCode[a.Code] = a
		def.accounts = append(def.accounts, a)
	}

	return def, nil
}

// Categories returns the chart's account categories in definition order.
func (d *Definition) Categories() []domain.AccountCategory {
	out := make([]domain.AccountCategory, len(d.categories))
	copy(out, d.categories)
	return out
}

// Category returns a category by id.
func (d *Definition) Category(id string) (domain.AccountCategory, bool) {
	c, ok := d.categoryMap[id]
	return c, ok
}

// HasAccount reports whether the chart defines the given account code.
func (d *Definition) HasAccount(code string) bool {
	_, ok := d.byCode[code]
	return ok
}

// Account returns the chart shape of one account.
func (d *Definition) Account(code string) (domain.Account, bool) {
	a, ok := d.byCode[code]
	if !ok {
		return domain.Account{}, false
	}
	return domain.Account{
		Code:          a.Code,
		Name:          a.Name,
		CategoryID:    a.Category,
		IsBankAccount: a.Bank,
		IsActive:      true,
	}, true
}

// NormalSide returns the normal balance side of an account, resolved through
// its category.
func (d *Definition) NormalSide(code string) (domain.BalanceSide, error) {
	a, ok := d.byCode[code]
	if !ok {
		return "", fmt.Errorf("unknown account code %s", code)
	}
	return d.categoryMap[a.Category].NormalSide, nil
}

// Accounts materializes the chart's accounts for an organization. The caller
// supplies identifiers and audit fields; the chart only supplies the shape.
func (d *Definition) Accounts() []domain.Account {
	accounts := make([]domain.Account, len(d.accounts))
	for i, a := range d.accounts {
		accounts[i] = domain.Account{
			Code:          a.Code,
			Name:          a.Name,
			CategoryID:    a.Category,
			IsBankAccount: a.Bank,
			IsActive:      true,
		}
	}
	return accounts
}

// BankAccountCode returns the code of the chart's designated bank account.
func (d *Definition) BankAccountCode() (string, error) {
	for _, a := range d.accounts {
		if a.Bank {
			return a.Code, nil
		}
	}
	return "", fmt.Errorf("chart defines no bank account")
}

// OpeningOffsetCode returns the equity account that absorbs the bank
// account's derived opening balance so the trial balance closes.
func (d *Definition) OpeningOffsetCode() (string, error) {
	for _, a := range d.accounts {
		if a.OpeningOffset {
			return a.Code, nil
		}
	}
	return "", fmt.Errorf("chart defines no opening-offset account")
}

// SystemRules derives the system tier of the rule catalog from the chart.
// The result is sorted descending by priority with definition order as the
// stable tie-break; regenerating it is the only way system rules change.
func (d *Definition) SystemRules() []domain.MappingRule {
	var rules []domain.MappingRule
	seq := 0
	for _, a := range d.accounts {
		for _, r := range a.Rules {
			match := domain.MatchType(r.Match)
			if match == "" {
				match = domain.MatchContains
			}
			rules = append(rules, domain.MappingRule{
				RuleID:      fmt.Sprintf("system-%s-%d", a.Code, seq),
				MatchType:   match,
				Pattern:     r.Pattern,
				AccountCode: a.Code,
				Priority:    r.Priority,
				Sequence:    seq,
				IsActive:    true,
				Source:      domain.RuleSourceSystem,
				Name:        fmt.Sprintf("%s -> %s %s", r.Pattern, a.Code, a.Name),
			})
			seq++
		}
	}
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		return rules[i].Sequence < rules[j].Sequence
	})
	return rules
}
