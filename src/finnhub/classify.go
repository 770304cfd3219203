package finnhub

// -----------------------------------------------------------------------------
// Target Classifier
// -----------------------------------------------------------------------------

// OutputFormat decides which normalized shape a target renders to.
type OutputFormat int

const (
	FormatTimeSeries OutputFormat = iota
	FormatTable
)

// -----------------------------------------------------------------------------

// Classify maps a kind to its output format. The free-text bypass always
// renders as a table, regardless of kind. Consulted once per target, after
// the raw override is resolved.
func Classify(kind QueryKind, freeText bool) OutputFormat {
	if freeText {
		return FormatTable
	}

	switch kind {
	case KindMetric:
		return FormatTable
	default:
		return FormatTimeSeries
	}
}
