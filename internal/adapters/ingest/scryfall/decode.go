package scryfall

import (
	"encoding/json"
	"errors"
	"io"

	"packrat/internal/core/catalog"
	perr "packrat/internal/platform/errors"
)

// DecodeCards reads the bulk payload, a JSON array of card objects, and
// decodes the catalog columns of each one. The array is streamed element by
// element so the whole multi-hundred-megabyte payload never has to sit in
// memory twice
//
// A value of the wrong shape (a string where the colors list should be, an
// object instead of an array) is a data validation error; malformed JSON is
// reported as such
func DecodeCards(r io.Reader) ([]catalog.Card, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	var cards []catalog.Card
	for dec.More() {
		var c catalog.Card
		if err := dec.Decode(&c); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				return nil, perr.WithField(
					perr.Validationf("card record %d has a %s where %s was expected",
						len(cards), typeErr.Value, typeErr.Type),
					typeErr.Field,
				)
			}
			return nil, perr.Wrap(err, perr.ErrorCodeJSON, "bulk payload is not valid json")
		}
		cards = append(cards, c)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return cards, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "bulk payload is not valid json")
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return perr.JSONErrf("bulk payload is not a json array (got %v)", tok)
	}
	return nil
}
