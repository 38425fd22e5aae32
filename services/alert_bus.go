package services

import (
	"fmt"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/config"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/models"
)

type alertDeps struct {
	rt *RealtimeHub
	ps *PushService
}

var _alert alertDeps

func InitAlertDeps(rt *RealtimeHub, ps *PushService) {
	_alert = alertDeps{rt: rt, ps: ps}
}

// EmitNutrientAlert persists a deficiency notification and fans it out
// to connected websocket clients and registered push devices. Delivery
// is best-effort; the persisted row is the source of truth.
func EmitNutrientAlert(n *models.UserNutrientNotification) error {
	if err := config.DB.Create(n).Error; err != nil {
		return err
	}

	if _alert.rt != nil {
		_alert.rt.BroadcastAlert(n.UserID, map[string]any{
			"kind":         "nutrient.deficiency",
			"notification": n,
		})
	}
	if _alert.ps != nil {
		_alert.ps.PushToUser(n.UserID, "Nutrition alert", n.Message, map[string]string{
			"severity":       n.Severity,
			"notificationId": fmt.Sprintf("%d", n.ID),
		})
	}
	return nil
}
