package websocket_router

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/notehub/note-hub-service/internal/app"
	"github.com/notehub/note-hub-service/internal/domain"
	"github.com/notehub/note-hub-service/internal/dto"
	"github.com/notehub/note-hub-service/internal/feed"
	"github.com/notehub/note-hub-service/internal/service"
	pkgapp "github.com/notehub/note-hub-service/pkg/app"
	"github.com/notehub/note-hub-service/pkg/code"
)

// Websocket actions of the live note feed.
const (
	ActionNoteSubscribe   = "NoteSubscribe"
	ActionNoteUnsubscribe = "NoteUnsubscribe"
	ActionNoteSnapshot    = "NoteSnapshot"
)

// clientFeed is one connection's view of the feed: its hub
// subscription and the filter the client last asked for.
type clientFeed struct {
	sub *feed.Subscription

	mu     sync.Mutex
	filter service.NoteFilter
}

func (cf *clientFeed) setFilter(f service.NoteFilter) {
	cf.mu.Lock()
	cf.filter = f
	cf.mu.Unlock()
}

func (cf *clientFeed) getFilter() service.NoteFilter {
	cf.mu.Lock()
	defer cf.mu.Unlock()
	return cf.filter
}

// FeedWSHandler pushes filtered note snapshots to subscribed clients.
type FeedWSHandler struct {
	*WSHandler

	mu    sync.Mutex
	feeds map[*pkgapp.WebsocketClient]*clientFeed
}

// NewFeedWSHandler creates a FeedWSHandler.
func NewFeedWSHandler(a *app.App) *FeedWSHandler {
	return &FeedWSHandler{
		WSHandler: NewWSHandler(a),
		feeds:     make(map[*pkgapp.WebsocketClient]*clientFeed),
	}
}

// UserInfo verifies the authenticated uid against storage and fills
// the connection's display data.
func (h *FeedWSHandler) UserInfo(c *pkgapp.WebsocketClient, uid int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := h.App.UserRepo.GetByUID(ctx, uid)
	if err != nil {
		return code.ErrorUserNotExist
	}
	if c.User != nil {
		c.User.Nickname = user.DisplayName()
	}
	return nil
}

// Subscribe handles the NoteSubscribe action. The first call attaches
// the connection to the user's feed and pushes an initial snapshot.
// Later calls just replace the filter and push a fresh snapshot.
func (h *FeedWSHandler) Subscribe(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.WsSubscribeRequest{}
	if valid, errs := c.BindAndValid(msg.Data, params); !valid {
		c.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.ErrorsToString()), ActionNoteSubscribe)
		return
	}

	filter := service.NoteFilter{
		Search:     params.Search,
		Category:   domain.Category(params.Category),
		DateFilter: service.DateFilter(params.DateFilter),
	}

	h.mu.Lock()
	cf, attached := h.feeds[c]
	if !attached {
		sub := h.App.FeedHub.Subscribe(c.User.UID)
		if sub == nil {
			h.mu.Unlock()
			c.ToResponse(code.Failed.Clone().WithDetails("feed is shut down"), ActionNoteSubscribe)
			return
		}
		cf = &clientFeed{sub: sub}
		h.feeds[c] = cf
	}
	h.mu.Unlock()

	cf.setFilter(filter)

	if !attached {
		go h.forward(c, cf)
		h.App.Logger().Info("note feed subscribed",
			zap.Int64("uid", c.User.UID),
			zap.Int("subscribers", h.App.FeedHub.SubscriberCount(c.User.UID)))
	}

	h.pushFresh(c, cf, ActionNoteSubscribe)
}

// Unsubscribe handles the NoteUnsubscribe action.
func (h *FeedWSHandler) Unsubscribe(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	h.detach(c)
	c.ToResponse(code.Success.Clone(), ActionNoteUnsubscribe)
}

// Snapshot handles the NoteSnapshot action: an on-demand refresh
// using the filter of the current subscription, or no filter when the
// client never subscribed.
func (h *FeedWSHandler) Snapshot(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	h.mu.Lock()
	cf := h.feeds[c]
	h.mu.Unlock()

	if cf == nil {
		cf = &clientFeed{}
	}
	h.pushFresh(c, cf, ActionNoteSnapshot)
}

// forward relays hub snapshots to the client until the subscription or
// the connection goes away.
func (h *FeedWSHandler) forward(c *pkgapp.WebsocketClient, cf *clientFeed) {
	for {
		select {
		case notes, ok := <-cf.sub.C():
			if !ok {
				return
			}
			h.push(c, cf, notes, ActionNoteSnapshot)
		case <-c.Done():
			h.detach(c)
			return
		}
	}
}

// pushFresh loads the user's current snapshot and sends it.
func (h *FeedWSHandler) pushFresh(c *pkgapp.WebsocketClient, cf *clientFeed, action string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	notes, err := h.App.NoteService.Snapshot(ctx, c.User.UID)
	if err != nil {
		h.respondError(c, code.ErrorNoteNotExist, err, action)
		return
	}
	h.push(c, cf, notes, action)
}

func (h *FeedWSHandler) push(c *pkgapp.WebsocketClient, cf *clientFeed, notes []*domain.Note, action string) {
	filtered := service.FilterNotes(notes, cf.getFilter(), time.Now())
	payload := &dto.NoteSnapshotDTO{
		Notes: service.NotesToDTO(filtered),
		Total: len(filtered),
	}
	c.ToResponse(code.Success.Clone().WithData(payload), action)
}

func (h *FeedWSHandler) detach(c *pkgapp.WebsocketClient) {
	h.mu.Lock()
	cf := h.feeds[c]
	delete(h.feeds, c)
	h.mu.Unlock()

	if cf != nil && cf.sub != nil {
		h.App.FeedHub.Unsubscribe(cf.sub)
	}
}
