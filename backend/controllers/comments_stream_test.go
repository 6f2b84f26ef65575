package controllers

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"educourse/backend/config"
	"educourse/backend/live"
	"educourse/backend/models"
	"educourse/backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openStreamDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One shared in-memory database across the pool.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, utils.Migrate(db))
	return db
}

// readFrame consumes one SSE frame: every line up to the blank separator.
func readFrame(t *testing.T, r *bufio.Reader) []string {
	t.Helper()

	var lines []string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if line == "" {
			return lines
		}
		lines = append(lines, line)
	}
}

func decodeTreeFrame(t *testing.T, frame []string) []*models.CommentNode {
	t.Helper()

	require.Len(t, frame, 1)
	require.True(t, strings.HasPrefix(frame[0], "data: "))

	var tree []*models.CommentNode
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(frame[0], "data: ")), &tree))
	return tree
}

func TestStreamSendsInitialTreeThenRebuilds(t *testing.T) {
	db := openStreamDB(t)
	cc := NewCommentsController(db, &config.Config{}, live.NewHub())

	const topicID = 42
	root := models.Comment{TopicID: topicID, Text: "first", UserID: 1, UserName: "ann"}
	require.NoError(t, db.Create(&root).Error)

	pr, pw := io.Pipe()
	events := make(chan live.Event, 1)
	released := make(chan struct{})

	go func() {
		cc.streamComments(bufio.NewWriter(pw), topicID, events, func() { close(released) })
		pw.Close()
	}()

	r := bufio.NewReader(pr)

	tree := decodeTreeFrame(t, readFrame(t, r))
	require.Len(t, tree, 1)
	assert.Equal(t, "first", tree[0].Text)
	assert.Empty(t, tree[0].Replies)

	reply := models.Comment{TopicID: topicID, ParentID: &root.ID, Text: "second", UserID: 2, UserName: "bob"}
	require.NoError(t, db.Create(&reply).Error)
	events <- live.Event{TopicID: topicID}

	// The change notification carries no payload; the frame is a full rebuild.
	tree = decodeTreeFrame(t, readFrame(t, r))
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, "second", tree[0].Replies[0].Text)

	close(events)
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("subscription was not released after the event channel closed")
	}
}

func TestStreamReleasesDeadClientOnQuietTopic(t *testing.T) {
	db := openStreamDB(t)
	cc := NewCommentsController(db, &config.Config{}, live.NewHub())
	cc.pingInterval = 5 * time.Millisecond

	pr, pw := io.Pipe()
	released := make(chan struct{})

	go func() {
		r := bufio.NewReader(pr)
		for { // drain the initial tree frame
			line, err := r.ReadString('\n')
			if err != nil || line == "\n" {
				break
			}
		}
		pr.Close() // client goes away; no comment ever arrives
	}()

	events := make(chan live.Event)
	go func() {
		cc.streamComments(bufio.NewWriter(pw), 7, events, func() { close(released) })
	}()

	// The failed keep-alive ping, not a publish, must detect the disconnect.
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("subscription leaked after a quiet-topic disconnect")
	}
}
