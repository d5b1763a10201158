package notify

import (
	"context"
	"fmt"
	"testing"

	"github.com/fadilmartias/fairfound-coach/internal/logger"
	"github.com/fadilmartias/fairfound-coach/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInbox_NewestFirstAndCapped(t *testing.T) {
	in := NewInbox(logger.NewNop())
	for i := 0; i < maxPerSession+5; i++ {
		in.Notify(context.Background(), "s1", model.Notification{ID: fmt.Sprint(i)})
	}

	list := in.List("s1")
	require.Len(t, list, maxPerSession)
	assert.Equal(t, fmt.Sprint(maxPerSession+4), list[0].ID)
	assert.Empty(t, in.List("other"))
}

func TestInbox_MarkAllRead(t *testing.T) {
	in := NewInbox(logger.NewNop())
	in.Notify(context.Background(), "s1", model.Notification{ID: "a"})
	in.Notify(context.Background(), "s1", model.Notification{ID: "b"})

	in.MarkAllRead("s1")
	for _, n := range in.List("s1") {
		assert.True(t, n.Read)
	}
}
