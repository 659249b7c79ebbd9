package seedfile

// SeedConfig is the top-level structure of the slots provisioning file.
type SeedConfig struct {
	Slots []SlotProps `yaml:"slots"`
}

// SlotProps describes one provisioned slot.
type SlotProps struct {
	Slot      int             `yaml:"slot"`
	Medicine  string          `yaml:"medicine"`
	Tablets   int             `yaml:"tablets"`
	Schedules []ScheduleProps `yaml:"schedules,omitempty"`
}

// ScheduleProps is one dosing time in "HH:MM" form.
type ScheduleProps struct {
	Time   string `yaml:"time"`
	Dosage int    `yaml:"dosage"`
}
