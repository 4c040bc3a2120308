package sandbox

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// Reglas de generación.
const (
	HotProductQuantity = 10 // unidades vendidas en la ventana para "em alta"
	salesWindow        = 7 * 24 * time.Hour
	noSalesWindow      = 30 * 24 * time.Hour
)

func (s *Server) listNotifications(c *fiber.Ctx) error {
	var readFilter *bool
	switch c.Query("read") {
	case "true":
		v := true
		readFilter = &v
	case "false":
		v := false
		readFilter = &v
	}
	typeFilter := c.Query("type")

	s.mu.Lock()
	t := s.tenantFor(userID(c))
	out := make([]dto.NotificationDTO, 0, len(t.notifications))
	for i := len(t.notifications) - 1; i >= 0; i-- {
		n := t.notifications[i]
		if readFilter != nil && n.Read != *readFilter {
			continue
		}
		if typeFilter != "" && n.Type != typeFilter {
			continue
		}
		out = append(out, dto.NotificationFromEntity(n.Notification))
	}
	s.mu.Unlock()

	count := len(out)
	return c.JSON(dto.Envelope[[]dto.NotificationDTO]{Data: out, Count: &count})
}

// generateNotifications evalúa las reglas sobre productos y ventas. No repite una
// alerta mientras haya otra igual sin leer para el mismo producto.
func (s *Server) generateNotifications(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tenantFor(userID(c))
	now := s.now().UTC()

	recent := make(map[string]int)
	lastSale := make(map[string]time.Time)
	for _, sale := range t.sales {
		if now.Sub(sale.SaleDate) <= salesWindow {
			recent[sale.Product.ID] += sale.Quantity
		}
		if sale.SaleDate.After(lastSale[sale.Product.ID]) {
			lastSale[sale.Product.ID] = sale.SaleDate
		}
	}

	created := make([]dto.NotificationDTO, 0)
	add := func(p *entity.Product, typ, priority, title, msg string) {
		if t.hasUnread(p.ID, typ) {
			return
		}
		n := &notificationRecord{
			Notification: entity.Notification{
				ID:        uuid.NewString(),
				Type:      typ,
				Priority:  priority,
				Title:     title,
				Message:   msg,
				CreatedAt: now,
			},
			productID: p.ID,
		}
		t.notifications = append(t.notifications, n)
		created = append(created, dto.NotificationFromEntity(n.Notification))
	}

	for _, p := range t.products {
		switch {
		case p.Stock == 0:
			add(p, entity.NotificationLowStock, entity.PriorityCritical,
				"Produto sem estoque", fmt.Sprintf("%s está sem estoque", p.Name))
		case p.Stock <= LowStockThreshold:
			add(p, entity.NotificationLowStock, entity.PriorityHigh,
				"Estoque baixo", fmt.Sprintf("%s tem apenas %d unidade(s)", p.Name, p.Stock))
		}

		sold := recent[p.ID]
		if sold >= HotProductQuantity {
			add(p, entity.NotificationHotProduct, entity.PriorityMedium,
				"Produto em alta", fmt.Sprintf("%s vendeu %d unidade(s) nos últimos 7 dias", p.Name, sold))
		}
		if sold > 0 && p.Stock < sold {
			add(p, entity.NotificationRestockSuggestion, entity.PriorityMedium,
				"Sugestão de reposição", fmt.Sprintf("Reponha %s: estoque %d, vendas na semana %d", p.Name, p.Stock, sold))
		}
		if last, ok := lastSale[p.ID]; !ok || now.Sub(last) > noSalesWindow {
			add(p, entity.NotificationNoSales, entity.PriorityLow,
				"Produto sem vendas", fmt.Sprintf("%s não teve vendas nos últimos 30 dias", p.Name))
		}
	}

	count := len(created)
	return c.Status(fiber.StatusCreated).JSON(dto.Envelope[[]dto.NotificationDTO]{Data: created, Count: &count})
}

func (t *tenant) hasUnread(productID, typ string) bool {
	for _, n := range t.notifications {
		if !n.Read && n.productID == productID && n.Type == typ {
			return true
		}
	}
	return false
}

func (t *tenant) notification(id string) (int, *notificationRecord) {
	for i, n := range t.notifications {
		if n.ID == id {
			return i, n
		}
	}
	return -1, nil
}

func (s *Server) markRead(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, n := s.tenantFor(userID(c)).notification(c.Params("id"))
	if n == nil {
		return fail(c, fiber.StatusNotFound, "Notificação não encontrada")
	}
	n.Read = true
	return c.JSON(dto.Envelope[dto.NotificationDTO]{Data: dto.NotificationFromEntity(n.Notification)})
}

func (s *Server) markAllRead(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := 0
	for _, n := range s.tenantFor(userID(c)).notifications {
		if !n.Read {
			n.Read = true
			updated++
		}
	}
	return c.JSON(fiber.Map{"message": "Notificações marcadas como lidas", "count": updated})
}

func (s *Server) deleteNotification(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tenantFor(userID(c))
	i, n := t.notification(c.Params("id"))
	if n == nil {
		return fail(c, fiber.StatusNotFound, "Notificação não encontrada")
	}
	t.notifications = append(t.notifications[:i], t.notifications[i+1:]...)
	return c.JSON(fiber.Map{"message": "Notificação removida"})
}
