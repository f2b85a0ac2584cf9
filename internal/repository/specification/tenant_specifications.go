package specification

import "gorm.io/gorm"

// InCollection narrows a query to one collection namespace.
type InCollection struct {
	Name string
}

func (s InCollection) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("collection = ?", s.Name)
}

// ForTenant narrows a query to one business, optionally one widget.
// An empty WidgetId matches every widget of the business.
type ForTenant struct {
	BusinessId string
	WidgetId   string
}

func (s ForTenant) Apply(db *gorm.DB) *gorm.DB {
	db = db.Where("business_id = ?", s.BusinessId)
	if s.WidgetId != "" {
		db = db.Where("widget_id = ?", s.WidgetId)
	}
	return db
}

// BySourceItem narrows a query to the chunks of one knowledge base item.
type BySourceItem struct {
	ItemId string
}

func (s BySourceItem) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_item_id = ?", s.ItemId)
}
