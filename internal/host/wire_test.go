package host

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdock/taskdock/internal/core/todo"
)

func TestInbound_Decode(t *testing.T) {
	raw := `{
		"kind": "commitEdit",
		"scope": {"kind": "workspace", "workspaceFolder": "/src/app"},
		"todoId": "a1b2",
		"title": "Buy milk"
	}`

	var msg Inbound
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))

	assert.Equal(t, KindCommitEdit, msg.Kind)
	require.NotNil(t, msg.Scope)
	assert.Equal(t, "workspace", msg.Scope.Kind)
	assert.Equal(t, "/src/app", msg.Scope.WorkspaceFolder)
	assert.Equal(t, "a1b2", msg.TodoID)
	assert.Equal(t, "Buy milk", msg.Title)
}

func TestOutbound_CueFields(t *testing.T) {
	msg := Outbound{
		Kind:       KindAutoDeleteCue,
		Scope:      ScopeOf(todo.WorkspaceTarget("/src/app")),
		TodoID:     "a1b2",
		DurationMs: 750,
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	// Field names are a UI compatibility contract.
	assert.JSONEq(t, `{
		"kind": "autoDeleteCue",
		"scope": {"kind": "workspace", "workspaceFolder": "/src/app"},
		"todoId": "a1b2",
		"durationMs": 750
	}`, string(data))
}

func TestMessageBus_SubscribeUnsubscribe(t *testing.T) {
	bus := NewMessageBus()

	var got []string
	unsub := bus.Subscribe(func(m Inbound) { got = append(got, m.Kind) })

	bus.Dispatch(Inbound{Kind: KindWebviewReady})
	unsub()
	bus.Dispatch(Inbound{Kind: KindClearScope})

	assert.Equal(t, []string{KindWebviewReady}, got)
}

func TestMessageBus_Outbound(t *testing.T) {
	bus := NewMessageBus()

	var kinds []string
	unsub := bus.OnOutbound(func(m Outbound) { kinds = append(kinds, m.Kind) })
	defer unsub()

	bus.PostMessage(Outbound{Kind: KindStateUpdate})

	assert.Equal(t, []string{KindStateUpdate}, kinds)
}
