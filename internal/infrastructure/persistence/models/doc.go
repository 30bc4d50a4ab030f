// Package models contains GORM persistence models that map to database tables.
// Domain entities carry no GORM tags; each model converts with ToDomain and
// FromDomain, and repositories only ever read and write models.
//
// Column types mirror the SQL files under migrations/. Money columns are
// numeric(12,2) and are converted to valueobject.Money on the way out.
package models
