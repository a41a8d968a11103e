package service

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ChangeType 定義變更事件的種類
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// ChangeEvent 是推送給訂閱者的變更通知。
// 訂閱者收到通知後重新抓取完整列表，不做增量修補。
type ChangeEvent struct {
	Table   string     `json:"table"`
	Type    ChangeType `json:"type"`
	PanelID uint       `json:"panel_id"`
}

// Client 代表一個訂閱了某場座談變更的 WebSocket 客戶端連接
type Client struct {
	Conn     *websocket.Conn  // WebSocket 連接
	UserID   uint             // 用戶 ID
	PanelID  uint             // 訂閱的座談 ID
	SendChan chan ChangeEvent // 事件發送通道，用於異步傳送
}

// ChangeFeed 管理以座談為鍵的變更通知訂閱
type ChangeFeed struct {
	clients    map[uint]map[*Client]bool // 兩層 map: panelID -> client -> bool
	clientsMux sync.RWMutex              // 用於保護 clients map 的讀寫鎖
}

// NewChangeFeed 創建並初始化新的變更通知服務
func NewChangeFeed() *ChangeFeed {
	return &ChangeFeed{
		clients: make(map[uint]map[*Client]bool),
	}
}

// HandleConnection 處理新的訂閱連接，阻塞直到連接關閉。
// 連接關閉時訂閱一定會被移除（取消訂閱即退訂，不是協作式取消）。
func (f *ChangeFeed) HandleConnection(conn *websocket.Conn, panelID, userID uint) {
	client := &Client{
		Conn:     conn,
		UserID:   userID,
		PanelID:  panelID,
		SendChan: make(chan ChangeEvent, 256),
	}

	f.addClient(client)

	// 確保連接關閉時清理資源
	defer func() {
		f.removeClient(client)
		conn.Close()
		close(client.SendChan)
	}()

	go f.writePump(client)
	f.readPump(client)
}

// readPump 持續監聽客戶端，只為了偵測關閉與回應心跳
func (f *ChangeFeed) readPump(client *Client) {
	client.Conn.SetReadLimit(4096)
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}
	}
}

// writePump 處理向客戶端發送事件的邏輯
func (f *ChangeFeed) writePump(client *Client) {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-client.SendChan:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			eventBytes, err := json.Marshal(event)
			if err != nil {
				log.Printf("event encoding error: %v", err)
				continue
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, eventBytes); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Notify 向訂閱了指定座談的所有客戶端廣播變更事件
func (f *ChangeFeed) Notify(panelID uint, table string, changeType ChangeType) {
	if f == nil {
		return
	}
	event := ChangeEvent{Table: table, Type: changeType, PanelID: panelID}

	f.clientsMux.RLock()
	clients := f.clients[panelID]
	f.clientsMux.RUnlock()

	for client := range clients {
		select {
		case client.SendChan <- event:
			// 事件成功加入發送隊列
		default:
			// 客戶端隊列已滿，關閉連接
			f.removeClient(client)
			client.Conn.Close()
		}
	}
}

// addClient 安全地添加新的訂閱
func (f *ChangeFeed) addClient(client *Client) {
	f.clientsMux.Lock()
	defer f.clientsMux.Unlock()

	if f.clients[client.PanelID] == nil {
		f.clients[client.PanelID] = make(map[*Client]bool)
	}
	f.clients[client.PanelID][client] = true
}

// removeClient 安全地移除訂閱
func (f *ChangeFeed) removeClient(client *Client) {
	f.clientsMux.Lock()
	defer f.clientsMux.Unlock()

	if clients, ok := f.clients[client.PanelID]; ok {
		delete(clients, client)
		// 如果座談沒有訂閱者了，刪除該項
		if len(clients) == 0 {
			delete(f.clients, client.PanelID)
		}
	}
}

// SubscriberCount 獲取指定座談的在線訂閱者數量
func (f *ChangeFeed) SubscriberCount(panelID uint) int {
	f.clientsMux.RLock()
	defer f.clientsMux.RUnlock()

	return len(f.clients[panelID])
}
