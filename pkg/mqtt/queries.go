package mqtt

import (
	"fmt"

	"github.com/PancyStudios/PancyWarden/pkg/models"
	"github.com/PancyStudios/PancyWarden/pkg/warnings"
)

// Request topics answered by RegisterWarningQueries
const (
	TopicWarningsCount = "warnings.count"
	TopicWarningsList  = "warnings.list"
)

// WarningsCount is the answer to a warnings.count request
type WarningsCount struct {
	Count int `json:"count"`
}

// WarningsList is the answer to a warnings.list request
type WarningsList struct {
	Warnings []models.Warning `json:"warnings"`
}

// RegisterWarningQueries answers warning lookups from other services
func RegisterWarningQueries(mc *MqttCommunicator, ledger *warnings.Ledger) {
	mc.On(TopicWarningsCount, countHandler(ledger))
	mc.On(TopicWarningsList, listHandler(ledger))
}

func countHandler(ledger *warnings.Ledger) RequestHandler {
	return func(payload map[string]interface{}) (interface{}, error) {
		guildID, userID, err := targetFrom(payload)
		if err != nil {
			return nil, err
		}
		return WarningsCount{Count: ledger.CountWarnings(guildID, userID)}, nil
	}
}

func listHandler(ledger *warnings.Ledger) RequestHandler {
	return func(payload map[string]interface{}) (interface{}, error) {
		guildID, userID, err := targetFrom(payload)
		if err != nil {
			return nil, err
		}
		warns, _ := ledger.GetWarnings(guildID, userID)
		if warns == nil {
			warns = []models.Warning{}
		}
		return WarningsList{Warnings: warns}, nil
	}
}

func targetFrom(payload map[string]interface{}) (guildID, userID string, err error) {
	guildID, _ = payload["guildId"].(string)
	userID, _ = payload["userId"].(string)
	if guildID == "" || userID == "" {
		return "", "", fmt.Errorf("guildId and userId are required")
	}
	return guildID, userID, nil
}
