package planner

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownAction = errors.New("unknown action")

type envelope struct {
	Type    Kind            `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// DecodeAction parses {"type": kind, "payload": {...}}.
func DecodeAction(data []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	var a Action
	var err error
	switch env.Type {
	case KindAddRecipe:
		a, err = decodePayload[AddRecipe](env.Payload)
	case KindUpdateRecipe:
		a, err = decodePayload[UpdateRecipe](env.Payload)
	case KindDeleteRecipe:
		a, err = decodePayload[DeleteRecipe](env.Payload)
	case KindAddMealPlan:
		a, err = decodePayload[AddMealPlan](env.Payload)
	case KindUpdateMealPlan:
		a, err = decodePayload[UpdateMealPlan](env.Payload)
	case KindDeleteMealPlan:
		a, err = decodePayload[DeleteMealPlan](env.Payload)
	case KindSetCurrentMealPlan:
		a, err = decodePayload[SetCurrentMealPlan](env.Payload)
	case KindAddPlannedMeal:
		a, err = decodePayload[AddPlannedMeal](env.Payload)
	case KindUpdatePlannedMeal:
		a, err = decodePayload[UpdatePlannedMeal](env.Payload)
	case KindDeletePlannedMeal:
		a, err = decodePayload[DeletePlannedMeal](env.Payload)
	case KindAddShoppingList:
		a, err = decodePayload[AddShoppingList](env.Payload)
	case KindUpdateShoppingList:
		a, err = decodePayload[UpdateShoppingList](env.Payload)
	case KindDeleteShoppingList:
		a, err = decodePayload[DeleteShoppingList](env.Payload)
	case KindToggleItemPurchased:
		a, err = decodePayload[ToggleItemPurchased](env.Payload)
	case KindSetSelectedDate:
		a, err = decodePayload[SetSelectedDate](env.Payload)
	case KindLoadData:
		a, err = decodePayload[LoadData](env.Payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	return a, nil
}

// EncodeAction is the inverse of DecodeAction.
func EncodeAction(a Action) ([]byte, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", a.Kind(), err)
	}
	return json.Marshal(envelope{Type: a.Kind(), Payload: payload})
}

func decodePayload[T Action](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, errors.New("missing payload")
	}
	err := json.Unmarshal(raw, &v)
	return v, err
}
