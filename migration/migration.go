package migration

import "context"

// Migrators maps a version name to its migrator. Run one version at a time;
// "auto" syncs the schema to the current entity definitions.
var Migrators = map[string]func(context.Context) error{
	"auto": AutoMigrate,
	"0000": migrate0000,
}
