package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"server/db"
	"server/geo"
	"server/models"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// SendSocketFunc returns true if data was successfully sent
type SendSocketFunc func([]byte) bool
type ConnectedClient struct {
	fun SendSocketFunc
}

// ConnectedClients is needed as a client may be connected more than once
type ConnectedClients []*ConnectedClient

var (
	ConnectedUsers = cmap.New[ConnectedClients]()
)

// LivePosition is what guards stream in and supervisors receive.
type LivePosition struct {
	GuardID   uint64  `json:"guard_id"`
	GuardName string  `json:"guard_name"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	At        int64   `json:"at"`
}

func getMonitorSocketID(siteID uint64) string {
	return "site_" + strconv.FormatUint(siteID, 10)
}

func addClient(id string, c *ConnectedClient) {
	ConnectedUsers.Upsert(id, ConnectedClients{c}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if exist {
			return append(valueInMap, c)
		}
		return newValue
	})
}

func removeClient(id string, c *ConnectedClient) {
	ConnectedUsers.Upsert(id, ConnectedClients{}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if !exist {
			return newValue
		}
		for _, oc := range valueInMap {
			if oc == c {
				continue
			}
			newValue = append(newValue, oc)
		}
		return newValue
	})
}

func broadcast(id string, data []byte) {
	clients, ok := ConnectedUsers.Get(id)
	if !ok {
		return
	}
	for _, client := range clients {
		client.fun(data)
	}
}

// WebSocket is the live-location feed. Guards stream their position;
// supervisors pass site_id and receive every position update for that site.
func WebSocket(c *gin.Context, guard *models.Guard) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer conn.Close()

	// Setup client
	isConnected := true
	client := ConnectedClient{}
	client.fun = func(data []byte) bool {
		if !isConnected {
			return false
		}
		err := conn.WriteMessage(websocket.TextMessage, data)
		if err != nil {
			log.Println("write err:", err)
			isConnected = false
			return false
		}
		return true
	}

	id := models.GetGuardSocketID(guard.ID)
	monitorSiteID := uint64(0)
	if guard.HasPermission(models.PermissionSupervisor) {
		if siteID, err := strconv.ParseUint(c.Query("site_id"), 10, 64); err == nil && siteID > 0 {
			monitorSiteID = siteID
			id = getMonitorSocketID(siteID)
		}
	}
	addClient(id, &client)
	defer removeClient(id, &client)

	// Main read cycle
	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			log.Println("read err:", err)
			isConnected = false
			break
		}
		if string(message) == "ping" {
			conn.WriteMessage(mt, []byte("pong"))
			continue
		}
		if string(message) == "pong" {
			continue
		}
		if monitorSiteID == 0 {
			processPositionMessage(guard, message)
		}
	}
}

func processPositionMessage(guard *models.Guard, message []byte) {
	if guard.SiteID == nil {
		return
	}
	position := LivePosition{}
	if err := json.Unmarshal(message, &position); err != nil {
		log.Printf("bad position message from guard %d: %v", guard.ID, err)
		return
	}
	if geo.ValidatePoint("position", geo.Point{Lat: position.Lat, Lng: position.Lng}) != nil {
		return
	}
	position.GuardID = guard.ID
	position.GuardName = guard.Name
	position.At = time.Now().Unix()
	data, _ := json.Marshal(position)
	broadcast(getMonitorSocketID(*guard.SiteID), data)

	// Keep the last seen position for the patrol monitor
	db.Instance.Model(&models.Guard{}).Where("id = ?", guard.ID).
		Updates(map[string]interface{}{"last_lat": position.Lat, "last_long": position.Lng, "last_seen_at": position.At})
}
