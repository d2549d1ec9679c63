package convee

// Kind tags what sort of engine produced a stack frame or owns a step.
type Kind string

const (
	KindProcess  Kind = "PROCESS_ENGINE"
	KindPipeline Kind = "PIPELINE"
)

func (k Kind) Valid() bool {
	return k == KindProcess || k == KindPipeline
}

func (k Kind) String() string {
	return string(k)
}
