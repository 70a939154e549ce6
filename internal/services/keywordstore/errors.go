package keywordstore

const (
	// ErrNotObject is returned when the persisted document is valid JSON but not an object.
	ErrNotObject = constError("keyword registry is not a JSON object")
)

type constError string

func (e constError) Error() string {
	return string(e)
}
