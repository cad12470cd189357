package schema

// Custom string types for type safety.
type (
	// Category represents one of the three metric families.
	Category string

	// MetricName represents the key of a single metric within a category.
	MetricName string

	// ComplexityLevel represents the qualitative label of an overall score.
	ComplexityLevel string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string

	// FallbackPolicy represents how the scorer reacts to a failing provider.
	FallbackPolicy string

	// SplitMode represents how an input document is split into texts.
	SplitMode string

	// EmbedderKind represents the embedding model backing semantic complexity.
	EmbedderKind string
)

// All metric categories supported.
const (
	ReadabilityCategory Category = "readability"
	LinguisticCategory  Category = "linguistic"
	TranslationCategory Category = "translation"
)

// Readability metrics.
const (
	FleschKincaid     MetricName = "flesch_kincaid"
	ColemanLiau       MetricName = "coleman_liau"
	GunningFog        MetricName = "gunning_fog"
	Smog              MetricName = "smog"
	FleschReadingEase MetricName = "flesch_reading_ease"
)

// Linguistic metrics.
const (
	AvgSentenceLength   MetricName = "avg_sentence_length"
	LexicalDiversity    MetricName = "lexical_diversity"
	SyntacticComplexity MetricName = "syntactic_complexity"
	VocabularyRarity    MetricName = "vocabulary_rarity"
)

// Translation metrics.
const (
	SemanticComplexity MetricName = "semantic_complexity"
	IdiomaticDensity   MetricName = "idiomatic_density"
	DomainSpecificity  MetricName = "domain_specificity"
)

// OverallComplexityKey is the flattened key carrying the overall score.
const OverallComplexityKey = "overall_complexity"

// All complexity levels, ordered from least to most complex.
const (
	LowLevel      ComplexityLevel = "low"
	MediumLevel   ComplexityLevel = "medium"
	HighLevel     ComplexityLevel = "high"
	VeryHighLevel ComplexityLevel = "very_high"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	RedisBackend      DatabaseBackend = "redis" // cache only
	NoneBackend       DatabaseBackend = "none"
)

// All fallback policies supported.
const (
	DegradeFallback FallbackPolicy = "degrade" // default
	StrictFallback  FallbackPolicy = "strict"
)

// All split modes supported.
const (
	SplitNone       SplitMode = "none" // default
	SplitParagraphs SplitMode = "paragraphs"
	SplitLines      SplitMode = "lines"
)

// All embedders supported.
const (
	HashingEmbedder EmbedderKind = "hashing" // default
	HTTPEmbedder    EmbedderKind = "http"
)

// AllCategories lists the categories in aggregation order.
var AllCategories = []Category{ReadabilityCategory, LinguisticCategory, TranslationCategory}

// AllLevels lists the complexity levels in ascending order.
var AllLevels = []ComplexityLevel{LowLevel, MediumLevel, HighLevel, VeryHighLevel}

// CategoryMetrics lists the metric names produced by each category, in display order.
var CategoryMetrics = map[Category][]MetricName{
	ReadabilityCategory: {FleschKincaid, ColemanLiau, GunningFog, Smog, FleschReadingEase},
	LinguisticCategory:  {AvgSentenceLength, LexicalDiversity, SyntacticComplexity, VocabularyRarity},
	TranslationCategory: {SemanticComplexity, IdiomaticDensity, DomainSpecificity},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	YAMLOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid SQL-capable backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	RedisBackend:      {},
	NoneBackend:       {},
}

// ValidFallbackPolicies lists all valid fallback policies.
var ValidFallbackPolicies = map[FallbackPolicy]struct{}{
	DegradeFallback: {},
	StrictFallback:  {},
}

// ValidSplitModes lists all valid split modes.
var ValidSplitModes = map[SplitMode]struct{}{
	SplitNone:       {},
	SplitParagraphs: {},
	SplitLines:      {},
}

// ValidEmbedders lists all valid embedders.
var ValidEmbedders = map[EmbedderKind]struct{}{
	HashingEmbedder: {},
	HTTPEmbedder:    {},
}

// AllMetricNames returns every metric name in category order.
func AllMetricNames() []MetricName {
	var names []MetricName
	for _, c := range AllCategories {
		names = append(names, CategoryMetrics[c]...)
	}
	return names
}

// CategoryOf returns the category that produces the given metric.
func CategoryOf(name MetricName) (Category, bool) {
	for _, c := range AllCategories {
		for _, m := range CategoryMetrics[c] {
			if m == name {
				return c, true
			}
		}
	}
	return "", false
}
