package models

/*
Logical field names used throughout the codebase.
Physical CSV headers vary by feature and language; Schema maps each of these
names to the header spellings that may carry it.
*/

const (
	FieldID        = "id"
	FieldCategory  = "category"
	FieldBrand     = "brand"
	FieldProduct   = "product"
	FieldCreatedBy = "createdby"
	FieldPrice     = "price"
)

// DefaultSchema returns the header spellings found in the product sheets the
// dashboard was built against. Vietnamese and English variants coexist.
func DefaultSchema() Schema {
	return Schema{
		FieldID:        {"ID", "id", "Mã"},
		FieldCategory:  {"Category", "Danh mục", "category"},
		FieldBrand:     {"Brand", "Thương hiệu", "brand"},
		FieldProduct:   {"Product", "Tên sản phẩm", "product", "Name"},
		FieldCreatedBy: {"Created By", "Người tạo", "createdby"},
		FieldPrice:     {"Price", "Giá", "price"},
	}
}
