package model

type ProductCreated struct {
	ProductID string
	Name      string
	Slug      string
}

func (e ProductCreated) Type() string { return "ProductCreated" }

type ProductUpdated struct {
	ProductID string
	Name      string
}

func (e ProductUpdated) Type() string { return "ProductUpdated" }

type ProductDeleted struct {
	ProductID string
}

func (e ProductDeleted) Type() string { return "ProductDeleted" }

type VariantImageUploaded struct {
	ColorName string
	Key       string
	URL       string
}

func (e VariantImageUploaded) Type() string { return "VariantImageUploaded" }
