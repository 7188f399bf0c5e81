package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineItemTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{StatusActive, StatusRemoved, true},
		{StatusActive, StatusPurchased, true},
		{StatusRemoved, StatusActive, true},
		{StatusRemoved, StatusPurchased, false},
		{StatusPurchased, StatusActive, false},
		{StatusPurchased, StatusRemoved, false},
		{StatusActive, StatusActive, false},
		{StatusDeleted, StatusActive, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.allowed, LineItemCanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestCartTransitions(t *testing.T) {
	require.True(t, CartCanTransition(StatusActive, StatusPurchased))
	require.False(t, CartCanTransition(StatusPurchased, StatusActive))
	require.False(t, CartCanTransition(StatusPurchased, StatusPurchased))
	require.False(t, CartCanTransition(StatusActive, StatusRemoved))
}
