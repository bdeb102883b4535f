package game

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = time.Second * 10
	pongWait   = time.Minute
	pingPeriod = (pongWait * 9) / 10
)

// socketConn is the seam between the hub and a physical transport.
type socketConn interface {
	Write(data []byte) error
	Read() ([]byte, error)
	Ping() error
	Close()
}

type websocketConn struct {
	socket *websocket.Conn
}

func newWebsocketConn(conn *websocket.Conn) *websocketConn {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	return &websocketConn{socket: conn}
}

func (wc *websocketConn) Write(data []byte) error {
	wc.socket.SetWriteDeadline(time.Now().Add(writeWait))
	return wc.socket.WriteMessage(websocket.TextMessage, data)
}

func (wc *websocketConn) Read() ([]byte, error) {
	_, p, err := wc.socket.ReadMessage()
	return p, err
}

func (wc *websocketConn) Ping() error {
	wc.socket.SetWriteDeadline(time.Now().Add(writeWait))
	return wc.socket.WriteMessage(websocket.PingMessage, nil)
}

func (wc *websocketConn) Close() {
	wc.socket.SetWriteDeadline(time.Now().Add(writeWait))
	wc.socket.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	wc.socket.Close()
}
