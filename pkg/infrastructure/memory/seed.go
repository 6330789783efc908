package memory

import (
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/catalog/domain/model"
)

// SeedProducts returns the launch catalog, used to populate the in-memory
// store when serve mode runs without a database.
func SeedProducts() []*model.Product {
	return []*model.Product{
		{
			Slug:        "tech-t-shirt",
			Name:        "TECH T-SHIRT®",
			PriceCents:  15900,
			Category:    "Camiseta",
			Badges:      []string{"BEST SELLER", "16% OFF"},
			Description: "A camiseta tecnológica que não precisa passar, não desbota e não apresenta odor.",
			Features:    []string{"Não precisa passar", "Antiodor", "Não desbota"},
			Sizes:       []string{"PP", "P", "M", "G", "GG"},
			Colors: []model.ColorVariant{
				{Name: "Preto", Hex: "#000000", Images: []string{
					"https://placehold.co/600x800?text=Tech+Black+1",
					"https://placehold.co/600x800?text=Tech+Black+2",
				}},
				{Name: "Azul", Hex: "#2121ab", Images: []string{
					"https://placehold.co/600x800?text=Tech+Blue+1",
				}},
			},
		},
		{
			Slug:        "daily-t-shirt",
			Name:        "DAILY T-SHIRT",
			PriceCents:  13800,
			Category:    "Camiseta",
			Badges:      []string{"NOVO"},
			Description: "A peça essencial para o seu guarda-roupa básico. Conforto extremo.",
			Features:    []string{"Toque macio", "Alta durabilidade"},
			Sizes:       []string{"P", "M", "G", "GG"},
			Colors: []model.ColorVariant{
				{Name: "Branco", Hex: "#ffffff", Images: []string{"https://placehold.co/600x800?text=Daily+White+1"}},
				{Name: "Preto", Hex: "#000000", Images: []string{"https://placehold.co/600x800?text=Daily+Black+1"}},
			},
		},
		{
			Slug:        "calca-futureform",
			Name:        "CALÇA FUTUREFORM",
			PriceCents:  39900,
			Category:    "Calça",
			Badges:      []string{"TECNOLÓGICA"},
			Description: "A calça que une alfaiataria com o conforto do moletom.",
			Features:    []string{"Repele líquidos", "Elasticidade 4-way"},
			Sizes:       []string{"38", "40", "42", "44"},
			Colors: []model.ColorVariant{
				{Name: "Cinza", Hex: "#5a5a5a", Images: []string{"https://placehold.co/600x800?text=Future+Grey+1"}},
			},
		},
	}
}

// Seed inserts the launch catalog into the store, assigning fresh IDs.
func Seed(store *ProductStore) error {
	for _, product := range SeedProducts() {
		id, err := store.NextID()
		if err != nil {
			return err
		}
		product.ID = id
		if err := store.Create(product); err != nil {
			return err
		}
	}
	return nil
}
