// handlers/shop.go
package handlers

import (
	"errors"

	"divinetemple/middleware"
	"divinetemple/services"
	"divinetemple/shop"

	"github.com/gofiber/fiber/v2"
)

type PurchaseRequest struct {
	ItemID string `json:"item_id"`
}

type ActivateRequest struct {
	ItemID string `json:"item_id"`
	Slot   string `json:"slot"`
}

// GetShopCatalog returns the catalog annotated with ownership and
// affordability for the requesting user.
func GetShopCatalog(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	engine := services.GetEngineRegistry().Shop(userID)
	catalog := engine.Catalog()

	items := make([]fiber.Map, 0, len(catalog))
	for _, item := range catalog {
		items = append(items, fiber.Map{
			"id":             item.ID,
			"name":           item.Name,
			"description":    item.Description,
			"cost":           item.Cost,
			"icon":           item.Icon,
			"type":           item.Type,
			"premium":        item.Premium,
			"required_level": item.RequiredLevel,
			"owned":          engine.OwnsItem(item.ID),
			"affordable":     engine.CanAfford(item.ID),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"items":   items,
	})
}

// PurchaseItem executes a purchase. Rejections (unknown item, repeat
// purchase, insufficient XP) come back as 400 with a user-facing message.
func PurchaseItem(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ItemID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "item_id required"})
	}

	engine := services.GetEngineRegistry().Shop(userID)
	result := engine.Purchase(req.ItemID)
	if !result.Success {
		status := 400
		if result.Err != nil &&
			!errors.Is(result.Err, shop.ErrItemNotFound) &&
			!errors.Is(result.Err, shop.ErrAlreadyOwned) &&
			!errors.Is(result.Err, shop.ErrInsufficientFunds) {
			status = 500
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": result.Message,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": result.Message,
		"active":  engine.ActiveItems(),
	})
}

// ActivateItem swaps an owned item into its exclusive slot.
func ActivateItem(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req ActivateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	engine := services.GetEngineRegistry().Shop(userID)

	slot := shop.ItemType(req.Slot)
	if slot == "" {
		// Infer the slot from the catalog when the client omits it
		item, ok := engine.Item(req.ItemID)
		if !ok {
			return c.Status(404).JSON(fiber.Map{"error": "Item not found"})
		}
		slot = item.Type
	}

	// The engine itself does not gate on ownership; the API does.
	if req.ItemID != "default" && !engine.OwnsItem(req.ItemID) {
		return c.Status(403).JSON(fiber.Map{"error": "You don't own this item"})
	}

	if err := engine.ActivateItem(req.ItemID, slot); err != nil {
		if errors.Is(err, shop.ErrInvalidSlot) {
			return c.Status(400).JSON(fiber.Map{"error": "This item type cannot be activated"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to activate item"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"active":  engine.ActiveItems(),
	})
}

// ActivateBooster starts another run of an owned consumable booster.
// Each activation is paid for at the item's cost, like a fresh purchase.
func ActivateBooster(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	engine := services.GetEngineRegistry().Shop(userID)
	if !engine.OwnsItem(req.ItemID) {
		return c.Status(403).JSON(fiber.Map{"error": "You don't own this item"})
	}

	if err := engine.ActivateBooster(req.ItemID); err != nil {
		if errors.Is(err, shop.ErrItemNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Item not found"})
		}
		if errors.Is(err, shop.ErrInsufficientFunds) {
			return c.Status(400).JSON(fiber.Map{"error": "Not enough XP to activate this booster"})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"boosters":   engine.ActiveBoosters(),
		"multiplier": engine.ActiveBoosterMultiplier(),
	})
}

// GetOwnedItems returns the user's purchase records.
func GetOwnedItems(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	engine := services.GetEngineRegistry().Shop(userID)
	return c.JSON(fiber.Map{
		"success": true,
		"items":   engine.OwnedItems(),
	})
}

// GetPurchaseHistory returns the purchase log, newest first.
func GetPurchaseHistory(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	engine := services.GetEngineRegistry().Shop(userID)
	return c.JSON(fiber.Map{
		"success": true,
		"history": engine.PurchaseHistory(),
	})
}

// GetActiveItems returns the slot loadout plus running boosters.
func GetActiveItems(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	engine := services.GetEngineRegistry().Shop(userID)
	return c.JSON(fiber.Map{
		"success":    true,
		"active":     engine.ActiveItems(),
		"boosters":   engine.ActiveBoosters(),
		"multiplier": engine.ActiveBoosterMultiplier(),
	})
}
