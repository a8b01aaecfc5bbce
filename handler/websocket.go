package handler

import (
	"estate_market/database"
	"estate_market/helper"
	"log"
	"strconv"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// serveTopic keeps the socket subscribed until the client goes away.
// Client frames are read only to notice the disconnect.
func serveTopic(c *websocket.Conn, topic string, initial helper.Event) {
	hub := helper.Realtime
	hub.Subscribe(topic, c)
	defer func() {
		hub.Unsubscribe(topic, c)
		c.Close()
	}()

	if err := hub.Send(c, initial); err != nil {
		log.Printf("realtime: initial snapshot on %s: %v", topic, err)
		return
	}
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

// FloorPlanSocket streams the apartment list of one floor plan.
func FloorPlanSocket(c *websocket.Conn) {
	id64, err := strconv.ParseUint(c.Params("floorPlanId"), 10, 64)
	if err != nil || id64 == 0 {
		c.Close()
		return
	}
	floorPlanId := uint(id64)
	floorPlan, err := helper.GetFloorPlanById(database.DB, floorPlanId)
	if err != nil {
		c.Close()
		return
	}
	serveTopic(c, helper.FloorPlanTopic(floorPlanId), helper.Event{Type: "floor-plan", Data: floorPlan.Apartments})
}

// ChatSocketGuard runs before the upgrade so access errors are plain HTTP
// responses.
func ChatSocketGuard(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	account, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return nil
	}
	if _, _, ok := chatRef(c, account); !ok {
		return nil
	}
	return c.Next()
}

// ChatSocket pushes new messages of one chat. The first frame carries the
// latest history.
func ChatSocket(c *websocket.Conn) {
	chatId := c.Params("chatId")
	messages, err := helper.GetMessages(database.DB, chatId, 200)
	if err != nil {
		c.Close()
		return
	}
	serveTopic(c, helper.ChatTopic(chatId), helper.Event{Type: "history", Data: messages})
}
