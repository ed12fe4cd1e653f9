package productrepo

import (
	"context"
	"strings"

	"ordering/internal/core/domain/model/catalog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// likeEscaper makes LIKE treat a token literally under ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GormProductCatalog matches a phrase against product names: every whitespace
// separated token must occur in the name, ignoring case.
type GormProductCatalog struct {
	db    *gorm.DB
	lower cases.Caser
}

func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db, lower: cases.Lower(language.Und)}
}

func (c *GormProductCatalog) tokens(phrase string) []string {
	return strings.Fields(c.lower.String(phrase))
}

// Find returns an empty, non-nil slice when nothing matches.
func (c *GormProductCatalog) Find(ctx context.Context, phrase string) ([]catalog.Product, error) {
	products := make([]catalog.Product, 0)

	tokens := c.tokens(phrase)
	if len(tokens) == 0 {
		return products, nil
	}

	query := c.db.WithContext(ctx).Model(&ProductDTO{})
	for _, token := range tokens {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(token)+"%")
	}

	var dtos []ProductDTO
	if err := query.Order("name").Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, nil
}
