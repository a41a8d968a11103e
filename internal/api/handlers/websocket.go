package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"panel_web/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 處理變更通知的 WebSocket 連接
type WebSocketHandler struct {
	feed *service.ChangeFeed
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(feed *service.ChangeFeed) *WebSocketHandler {
	return &WebSocketHandler{feed: feed}
}

// Subscribe 把連接升級為 WebSocket 並訂閱指定座談的變更通知。
// 連接關閉即退訂，訂閱的生命週期跟著連接走。
func (h *WebSocketHandler) Subscribe(c *gin.Context) {
	panelID, err := parseID(c)
	if err != nil {
		return
	}

	user := currentUser(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "升級WebSocket失敗"})
		return
	}

	// 阻塞直到連接關閉，清理在 HandleConnection 內完成
	h.feed.HandleConnection(conn, panelID, user.ID)
}
