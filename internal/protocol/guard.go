package protocol

import (
	"reflect"

	"github.com/rs/zerolog/log"
)

// checkZeroSized rejects types whose values occupy no storage; a counted
// record stream of them cannot tell one element from another.
func checkZeroSized[T any]() error {
	t := reflect.TypeFor[T]()
	if t.Size() == 0 {
		log.Error().Str("type", t.String()).Msg("protocol.checkZeroSized rejected type")
		return ErrZeroSized
	}
	return nil
}
