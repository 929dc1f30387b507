package patreon

import (
	"io/ioutil"

	"emperror.dev/errors"
	jsoniter "github.com/json-iterator/go"
)

// snapshotJSON leaves names like "Tom & Jerry" readable in the file.
var snapshotJSON = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
}.Froze()

// EncodeSnapshot renders subscribers as an indented json array. A nil or
// empty list renders as [].
func EncodeSnapshot(subscribers []*Subscriber) ([]byte, error) {
	if subscribers == nil {
		subscribers = []*Subscriber{}
	}

	return snapshotJSON.MarshalIndent(subscribers, "", "  ")
}

// WriteSnapshot overwrites path with the encoded subscribers. Encoding
// happens before the file is opened, so a failure leaves the old file alone.
func WriteSnapshot(path string, subscribers []*Subscriber) error {
	encoded, err := EncodeSnapshot(subscribers)
	if err != nil {
		return errors.WithMessage(err, "encode snapshot")
	}

	err = ioutil.WriteFile(path, encoded, 0644)
	if err != nil {
		return errors.WithMessage(err, "write snapshot")
	}

	return nil
}
