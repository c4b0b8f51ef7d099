package model

// Provider selects an inventory driver and its settings (e.g., AWS_REGION).
type Provider struct {
	Driver   string
	Settings map[string]string
}
