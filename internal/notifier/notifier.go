// Package notifier sends order lifecycle notifications to students over SMS
// and email. All sends are fire-and-forget from the order service: failures
// are logged, never surfaced to the ordering flow.
package notifier

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/ommangate/order-up-scholars/configs"
	"github.com/ommangate/order-up-scholars/internal/logging"
	"github.com/ommangate/order-up-scholars/internal/models"
)

type Notifier struct {
	db    *gorm.DB
	sms   *smsSender
	email *emailSender
	log   *slog.Logger
}

func New(cfg configs.Config, gdb *gorm.DB) *Notifier {
	n := &Notifier{db: gdb, log: logging.New("notifier")}
	if cfg.SMS.Enabled {
		n.sms = newSMSSender(cfg.SMS)
	}
	if cfg.Email.Enabled {
		n.email = newEmailSender(cfg.Email)
	}
	return n
}

func (n *Notifier) user(userID uint) (models.User, bool) {
	var u models.User
	if err := n.db.First(&u, userID).Error; err != nil {
		n.log.Warn("notify: user lookup failed", "user_id", userID, "error", err)
		return models.User{}, false
	}
	return u, true
}

func (n *Notifier) OrderPlaced(userID uint, o models.Order) {
	u, ok := n.user(userID)
	if !ok {
		return
	}
	if n.sms != nil {
		if err := n.sms.orderPlaced(u, o); err != nil {
			n.log.Warn("sms send failed", "order_id", o.ID, "to", u.Phone, "error", err)
		}
	}
	if n.email != nil {
		if err := n.email.orderPlaced(u, o); err != nil {
			n.log.Warn("email send failed", "order_id", o.ID, "to", u.Email, "error", err)
		}
	}
}

func (n *Notifier) OrderReady(userID uint, o models.Order) {
	u, ok := n.user(userID)
	if !ok {
		return
	}
	if n.sms != nil {
		if err := n.sms.orderReady(u, o); err != nil {
			n.log.Warn("sms send failed", "order_id", o.ID, "to", u.Phone, "error", err)
		}
	}
}
