package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyager/internal/domain/profile"
	"voyager/internal/repository/memory"
	"voyager/internal/services/chatsession"
	profilesvc "voyager/internal/services/profile"
	toolmemory "voyager/internal/tools/memory"
	"voyager/pkg/errors"
	"voyager/pkg/logger"
)

func TestNewService_RequiresRootAgent(t *testing.T) {
	_, err := NewService(Config{
		AppName:  "voyager",
		Sessions: chatsession.NewRegistry("voyager", nil),
	})
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestNewService_RequiresSessionRegistry(t *testing.T) {
	_, err := NewService(Config{AppName: "voyager"})
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestChat_RejectsEmptyMessage(t *testing.T) {
	svc := &Service{
		sessions: chatsession.NewRegistry("voyager", nil),
		log:      logger.Get(),
	}

	_, err := svc.Chat(context.Background(), Request{Message: "   "})
	var vErr *errors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "message", vErr.Field)
}

func TestAfterTurn_PersistsMemorizedFacts(t *testing.T) {
	profiles := profilesvc.NewService(nil, memory.NewProfileStore())
	facts := toolmemory.NewStore()
	svc := &Service{
		profiles: profiles,
		memory:   facts,
		log:      logger.Get(),
	}
	ctx := context.Background()

	_, err := profiles.Create(ctx, profile.CreateRequest{
		UserID: "u-1",
		Basic:  profile.BasicInfo{Name: "Maya", Email: "maya@example.com"},
	})
	require.NoError(t, err)

	facts.Put("s-1", "seat", "aisle")
	svc.afterTurn(ctx, "u-1", "s-1")

	p, err := profiles.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "aisle", p.Prefs.LearnedPreferences["seat"])

	// Facts are drained once persisted
	assert.Empty(t, facts.Peek("s-1"))
}

func TestAfterTurn_AnonymousTurnsLeaveNoTrace(t *testing.T) {
	profiles := profilesvc.NewService(nil, memory.NewProfileStore())
	facts := toolmemory.NewStore()
	svc := &Service{
		profiles: profiles,
		memory:   facts,
		log:      logger.Get(),
	}

	facts.Put("s-1", "seat", "aisle")
	svc.afterTurn(context.Background(), "", "s-1")

	// Nothing drained for anonymous users
	assert.Equal(t, "aisle", facts.Peek("s-1")["seat"])
}
