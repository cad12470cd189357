package schema

// MetricRule describes how one raw metric is normalized.
type MetricRule struct {
	Name     MetricName `json:"name" yaml:"name"`
	Category Category   `json:"category" yaml:"category"`
	Rule     string     `json:"rule" yaml:"rule"`
	Clamped  bool       `json:"clamped" yaml:"clamped"`
}

// MetricsRenderModel contains all processed data needed for displaying metric definitions.
type MetricsRenderModel struct {
	Title       string               `json:"title" yaml:"title"`
	Description string               `json:"description" yaml:"description"`
	Rules       []MetricRule         `json:"rules" yaml:"rules"`
	Weights     CategoryWeights      `json:"weights" yaml:"weights"`
	Thresholds  ComplexityThresholds `json:"thresholds" yaml:"thresholds"`
	Formula     string               `json:"formula" yaml:"formula"`
	ClampAll    bool                 `json:"clamp_all" yaml:"clamp_all"`
}
