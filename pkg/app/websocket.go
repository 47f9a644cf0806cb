package app

import (
	"strings"
	"sync"
	"time"

	"github.com/notehub/note-hub-service/pkg/code"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/lxzan/gws"
	"golang.org/x/sync/singleflight"
	"go.uber.org/zap"
)

const (
	WebSocketServerPingInterval = 25
	WebSocketServerPingWait     = 40
)

// WebSocketMessage is the wire frame: "<type>|<json payload>".
type WebSocketMessage struct {
	Type string `json:"type"`
	Data []byte `json:"data"`
}

type WebsocketServerConfig struct {
	GWSOption    gws.ServerOption
	PingInterval time.Duration
	PingWait     time.Duration
	TokenManager TokenManager
	Logger       *zap.Logger
}

// WebsocketClient stores one connection and its auth state.
type WebsocketClient struct {
	conn        *gws.Conn
	done        chan struct{}
	closeOnce   sync.Once
	Ctx         *gin.Context
	User        *UserEntity
	UserClients *ConnStorage
	SF          *singleflight.Group
	logger      *zap.Logger
}

// ResResult is the websocket response envelope.
type ResResult struct {
	Code   int         `json:"code"`
	Status bool        `json:"status"`
	Msg    interface{} `json:"message,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

type ResDetailsResult struct {
	Code    int         `json:"code"`
	Status  bool        `json:"status"`
	Msg     interface{} `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Done is closed when the connection goes away. Handlers that spawn
// goroutines tie their lifetime to it.
func (c *WebsocketClient) Done() <-chan struct{} {
	return c.done
}

// BindAndValid decodes a websocket payload into obj.
func (c *WebsocketClient) BindAndValid(data []byte, obj any) (bool, ValidErrors) {
	var errs ValidErrors
	if err := sonic.Unmarshal(data, obj); err != nil {
		errs = append(errs, &ValidError{
			Key:     "body",
			Message: "Invalid message format",
		})
		return false, errs
	}
	return true, nil
}

// PingLoop keeps the connection alive until done is closed.
func (c *WebsocketClient) PingLoop(pingInterval time.Duration) {
	ticker := time.NewTicker(pingInterval * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			c.logger.Info("websocket client ping loop stopped")
			return
		case <-ticker.C:
			if c.conn == nil {
				return
			}
			if err := c.conn.WritePing(nil); err != nil {
				c.logger.Error("websocket client ping err", zap.Error(err))
				return
			}
		}
	}
}

// ToResponse sends a coded result to this client.
func (c *WebsocketClient) ToResponse(codeObj *code.Code, action ...string) {
	var actionType string
	if len(action) > 0 {
		actionType = action[0]
	}

	if codeObj.HaveDetails() {
		c.send(actionType, ResDetailsResult{
			Code:    codeObj.Code(),
			Status:  codeObj.Status(),
			Msg:     codeObj.Lang.GetMessage(),
			Data:    codeObj.Data(),
			Details: strings.Join(codeObj.Details(), ","),
		}, false, false)
	} else if actionType != "" || codeObj.Code() > 200 || codeObj.HaveData() {
		c.send(actionType, ResResult{
			Code:   codeObj.Code(),
			Status: codeObj.Status(),
			Msg:    codeObj.Lang.GetMessage(),
			Data:   codeObj.Data(),
		}, false, false)
	}

	codeObj.Reset()
}

// BroadcastResponse sends a coded result to every connection of the
// same user. excludeSelf skips the originating connection.
func (c *WebsocketClient) BroadcastResponse(codeObj *code.Code, excludeSelf bool, action ...string) {
	var actionType string
	if len(action) > 0 {
		actionType = action[0]
	}

	c.send(actionType, ResResult{
		Code:   codeObj.Code(),
		Status: codeObj.Status(),
		Msg:    codeObj.Lang.GetMessage(),
		Data:   codeObj.Data(),
	}, true, excludeSelf)

	codeObj.Reset()
}

func (c *WebsocketClient) send(actionType string, content any, isBroadcast bool, isExcludeSelf bool) {
	responseBytes, _ := sonic.Marshal(content)
	if actionType != "" {
		responseBytes = append([]byte(actionType+"|"), responseBytes...)
	}
	if isBroadcast {
		c.broadcast(responseBytes, isExcludeSelf)
	} else {
		c.message(responseBytes)
	}
}

func (c *WebsocketClient) message(payload []byte) {
	c.conn.WriteMessage(gws.OpcodeText, payload)
}

func (c *WebsocketClient) broadcast(payload []byte, isExcludeSelf bool) {
	if c.UserClients == nil {
		return
	}
	b := gws.NewBroadcaster(gws.OpcodeText, payload)
	defer b.Close()

	for _, uc := range *c.UserClients {
		if uc.conn == nil {
			continue
		}
		if isExcludeSelf && uc.conn == c.conn {
			continue
		}
		_ = b.Broadcast(uc.conn)
	}
}

type ConnStorage = map[*gws.Conn]*WebsocketClient

// WebsocketServer dispatches typed messages to registered handlers and
// tracks per-user connection groups for snapshot broadcasts.
type WebsocketServer struct {
	handlers        map[string]func(*WebsocketClient, *WebSocketMessage)
	userDataHandler func(*WebsocketClient, int64) error
	clients         ConnStorage
	userClients     map[int64]ConnStorage
	mu              sync.Mutex
	up              *gws.Upgrader
	config          *WebsocketServerConfig
	logger          *zap.Logger
}

func NewWebsocketServer(c WebsocketServerConfig) *WebsocketServer {
	if c.PingInterval == 0 {
		c.PingInterval = WebSocketServerPingInterval
	}
	if c.PingWait == 0 {
		c.PingWait = WebSocketServerPingWait
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	wss := WebsocketServer{
		handlers:    make(map[string]func(*WebsocketClient, *WebSocketMessage)),
		clients:     make(ConnStorage),
		userClients: make(map[int64]ConnStorage),
		config:      &c,
		logger:      c.Logger,
	}
	wss.up = gws.NewUpgrader(&wss, &c.GWSOption)
	return &wss
}

func (w *WebsocketServer) Run() gin.HandlerFunc {
	return func(c *gin.Context) {
		socket, err := w.up.Upgrade(c.Writer, c.Request)
		if err != nil {
			w.logger.Error("websocket upgrade err", zap.Error(err))
			return
		}
		client := &WebsocketClient{
			conn:   socket,
			done:   make(chan struct{}),
			Ctx:    c,
			SF:     new(singleflight.Group),
			logger: w.logger,
		}
		w.AddClient(client)
		go socket.ReadLoop()
	}
}

// Use registers a handler for a message type.
func (w *WebsocketServer) Use(action string, handler func(*WebsocketClient, *WebSocketMessage)) {
	w.handlers[action] = handler
}

// UserVerifyUse installs the callback that validates the authenticated
// user against storage and fills in display data.
func (w *WebsocketServer) UserVerifyUse(handler func(*WebsocketClient, int64) error) {
	w.userDataHandler = handler
}

func (w *WebsocketServer) rejectAuth(c *WebsocketClient, err error) {
	w.logger.Error("websocket authorization failed", zap.Error(err))
	c.ToResponse(code.ErrorInvalidUserAuthToken.Clone(), "Authorization")
	c.conn.WriteClose(1000, []byte("AuthorizationFailed"))
}

// Authorization handles the first message of every connection: a JWT
// token in the payload. On success the connection joins the user group
// and starts its ping loop.
func (w *WebsocketServer) Authorization(c *WebsocketClient, msg *WebSocketMessage) {
	user, err := w.config.TokenManager.Parse(string(msg.Data))
	if err != nil {
		w.rejectAuth(c, err)
		return
	}

	if w.userDataHandler != nil {
		if err := w.userDataHandler(c, user.UID); err != nil {
			w.rejectAuth(c, err)
			return
		}
	}

	c.User = user
	w.AddUserClient(c)

	w.mu.Lock()
	userClients := w.userClients[user.UID]
	w.mu.Unlock()
	c.UserClients = &userClients

	c.ToResponse(code.Success.Clone(), "Authorization")
	w.logger.Info("websocket user enters",
		zap.Int64("uid", c.User.UID),
		zap.String("nickname", c.User.Nickname),
		zap.Int("connCount", len(userClients)))
	go c.PingLoop(w.config.PingInterval)
}

func (w *WebsocketServer) GetClient(conn *gws.Conn) *WebsocketClient {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clients[conn]
}

func (w *WebsocketServer) AddClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clients[c.conn] = c
}

func (w *WebsocketServer) RemoveClient(conn *gws.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.clients, conn)
}

func (w *WebsocketServer) AddUserClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.userClients[c.User.UID] == nil {
		w.userClients[c.User.UID] = make(ConnStorage)
	}
	w.userClients[c.User.UID][c.conn] = c
}

func (w *WebsocketServer) RemoveUserClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.userClients[c.User.UID], c.conn)
}

// UserConnections returns the active connections of one user.
func (w *WebsocketServer) UserConnections(uid int64) []*WebsocketClient {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*WebsocketClient, 0, len(w.userClients[uid]))
	for _, uc := range w.userClients[uid] {
		out = append(out, uc)
	}
	return out
}

func (w *WebsocketServer) OnOpen(conn *gws.Conn) {
	w.logger.Info("websocket client connect", zap.Int("count", len(w.clients)))
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnClose(conn *gws.Conn, err error) {
	c := w.GetClient(conn)
	w.RemoveClient(conn)

	if c == nil {
		return
	}
	c.closeOnce.Do(func() { close(c.done) })
	if c.User != nil {
		w.logger.Info("websocket user leave", zap.Int64("uid", c.User.UID))
		w.RemoveUserClient(c)
	}
}

func (w *WebsocketServer) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
	_ = socket.WritePong(nil)
}

func (w *WebsocketServer) OnPong(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnMessage(conn *gws.Conn, message *gws.Message) {
	defer message.Close()
	if message.Opcode != gws.OpcodeText {
		return
	}
	if message.Data.String() == "close" {
		conn.WriteClose(1000, []byte("ClientClose"))
		return
	}

	c := w.GetClient(conn)
	if c == nil {
		return
	}

	messageStr := message.Data.String()
	index := strings.Index(messageStr, "|")

	var msg WebSocketMessage
	if index != -1 {
		msg.Type = messageStr[:index]
		msg.Data = []byte(messageStr[index+1:])
	} else {
		w.logger.Error("websocket message missing type separator")
		return
	}

	if msg.Type == "Authorization" {
		w.Authorization(c, &msg)
		return
	}

	if c.User == nil {
		c.ToResponse(code.ErrorNotUserAuthToken.Clone())
		return
	}

	handler, exists := w.handlers[msg.Type]
	if exists {
		handler(c, &msg)
	} else {
		w.logger.Error("websocket unknown message type", zap.String("type", msg.Type))
	}
}
