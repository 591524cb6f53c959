package converter

import (
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/entity"
)

// CategoryToResponse converts a single category and whichever children were preloaded.
func CategoryToResponse(category *entity.Category, stats map[uint]entity.ServiceStats) *dto.CategoryResponse {
	if category == nil {
		return nil
	}

	response := &dto.CategoryResponse{
		ID:            category.ID,
		Name:          category.Name,
		Slug:          category.Slug,
		Order:         category.Order,
		ParentID:      category.ParentID,
		Description:   category.Description,
		CreatedAt:     category.CreatedAt,
		UpdatedAt:     category.UpdatedAt,
	}
	if st, ok := stats[category.ID]; ok && st.Count > 0 {
		minPrice, maxPrice := st.MinPrice, st.MaxPrice
		response.ServicesCount = st.Count
		response.MinPrice = &minPrice
		response.MaxPrice = &maxPrice
	}
	for i := range category.Children {
		response.Children = append(response.Children, *CategoryToResponse(&category.Children[i], stats))
	}
	return response
}

// CategoriesToTree nests a flat, order-sorted list under its roots.
// Categories whose parent is missing from the list are promoted to roots.
func CategoriesToTree(categories []entity.Category, stats map[uint]entity.ServiceStats) []dto.CategoryResponse {
	byParent := make(map[uint][]entity.Category)
	known := make(map[uint]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	var roots []entity.Category
	for _, c := range categories {
		if c.ParentID == nil || !known[*c.ParentID] {
			roots = append(roots, c)
			continue
		}
		byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
	}

	var build func(c entity.Category) dto.CategoryResponse
	build = func(c entity.Category) dto.CategoryResponse {
		c.Children = nil
		node := *CategoryToResponse(&c, stats)
		for _, child := range byParent[c.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	tree := make([]dto.CategoryResponse, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, build(root))
	}
	return tree
}
