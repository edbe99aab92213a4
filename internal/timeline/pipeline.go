package timeline

// Pipeline runs the full transform for one day of samples. It holds only
// configuration; every Run is independent and idempotent for identical
// input, so callers may invoke it as often as they like.
type Pipeline struct {
	cfg Config
}

func NewPipeline(cfg Config) *Pipeline {
	if cfg.BucketMinutes <= 0 {
		cfg = DefaultConfig()
	}
	return &Pipeline{cfg: cfg}
}

// Run executes bucketing, idle marking, classification, merging, score
// aggregation and grid projection in order. Empty input yields a fully
// zero-valued timeline, never an error.
func (p *Pipeline) Run(samples []Sample, idleSamples []IdleSample) DayTimeline {
	buckets, droppedSamples := BuildBuckets(samples, p.cfg)
	droppedIdle := MarkIdle(buckets, idleSamples, p.cfg)
	Classify(buckets)

	blocks := MergeBlocks(buckets)
	scores, workSeconds, breakSeconds := AggregateScores(blocks, p.cfg)

	return DayTimeline{
		Workblocks:     blocks,
		Breakdown:      BuildBreakdown(samples, p.cfg),
		Scores:         scores,
		Series:         ProjectSeries(blocks, p.cfg),
		WorkSeconds:    workSeconds,
		BreakSeconds:   breakSeconds,
		DroppedSamples: droppedSamples + droppedIdle,
	}
}

// Config exposes the effective pipeline configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}
