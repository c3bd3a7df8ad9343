package natsadapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionSubject(t *testing.T) {
	assert.Equal(t, "ecoaldeas.selection.7f1c2b9e-0d4a-4c55-9a57-1e2f3a4b5c6d",
		SelectionSubject("7f1c2b9e-0d4a-4c55-9a57-1e2f3a4b5c6d"))
}
