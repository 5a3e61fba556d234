package benefits

import "fmt"

// Category is the closed set of benefit category slugs. Unknown slugs are
// rejected at the HTTP boundary instead of being silently stored.
type Category string

const (
	CategoryMarketingVendas Category = "marketing-vendas"
	CategoryCSSuporte       Category = "cs-suporte"
	CategoryGestaoADM       Category = "gestao-adm"
	CategoryCloudTech       Category = "cloud-tech"
	CategoryPeople          Category = "people"
)

var knownCategories = map[Category]bool{
	CategoryMarketingVendas: true,
	CategoryCSSuporte:       true,
	CategoryGestaoADM:       true,
	CategoryCloudTech:       true,
	CategoryPeople:          true,
}

func ParseCategory(slug string) (Category, error) {
	category := Category(slug)
	if !knownCategories[category] {
		return "", fmt.Errorf("unknown category: %s", slug)
	}
	return category, nil
}

func (c Category) String() string {
	return string(c)
}
