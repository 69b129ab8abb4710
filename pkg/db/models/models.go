package models

// All lists every catalog model, in dependency order, for AutoMigrate on
// local sqlite databases.
func All() []any {
	return []any{
		&Brand{},
		&VehicleModel{},
		&BatteryProduct{},
		&LightsProduct{},
		&WipersProduct{},
		&FilterProduct{},
		&FilterCompatibility{},
	}
}
