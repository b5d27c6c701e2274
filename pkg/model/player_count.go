package model

import (
	"encoding/json"
	"fmt"
	"strconv"

	"sportsclub/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// PlayerCount is the number of players on a booking. It is stored as text
// ("4 Players") and read back from either text or a bare number; unreadable
// or negative values count as 0.
type PlayerCount int

func (c PlayerCount) String() string {
	return fmt.Sprintf("%d Players", int(c))
}

func (c PlayerCount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.TypeString, bsoncore.AppendString(nil, c.String()), nil
}

func (c *PlayerCount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}

	switch t {
	case bson.TypeString:
		*c = clampCount(sanitizer.LeadingInt(raw.StringValue()))
	case bson.TypeInt32:
		*c = clampCount(int(raw.Int32()))
	case bson.TypeInt64:
		*c = clampCount(int(raw.Int64()))
	case bson.TypeDouble:
		*c = clampCount(int(raw.Double()))
	default:
		*c = 0
	}
	return nil
}

func (c PlayerCount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(c))), nil
}

func (c *PlayerCount) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch val := v.(type) {
	case float64:
		*c = PlayerCount(int(val))
	case string:
		*c = PlayerCount(sanitizer.LeadingInt(val))
	case nil:
		*c = 0
	default:
		return fmt.Errorf("player count must be a number or text, got %s", string(data))
	}
	return nil
}

func clampCount(n int) PlayerCount {
	if n < 0 {
		return 0
	}
	return PlayerCount(n)
}
