package main

// @title Parts Replenishment API
// @version 1.0
// @description Inventory ledger, purchase order lifecycle and automatic reordering with full observability (logging, tracing, metrics)

// @contact.name API Support
// @contact.url http://github.com/tair/parts-replenishment

// @host localhost:8080
// @BasePath /

// @tag.name Inventory
// @tag.description Stock ledger and audit log

// @tag.name Orders
// @tag.description Purchase order lifecycle

// @tag.name Reorder
// @tag.description Low-stock alerts and automatic ordering

// @tag.name Catalog
// @tag.description Vendors and parts

// @tag.name Health
// @tag.description Health check endpoints
