package chat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Command patterns, tried in order. Multi-word commands sit above the
// generic patterns their text could also satisfy: an automation command
// containing "then turn on living room light" must classify as
// create-automation, never as turn-on.
var (
	reListAutomations  = regexp.MustCompile(`^(?:show|list|view|get) (?:all )?automations?$`)
	reCreateAutomation = regexp.MustCompile(`create automation (.+?) when (.+?) then (.+)$`)
	reDeleteAutomation = regexp.MustCompile(`(?:delete|remove) automation (.+)$`)
	reToggleAutomation = regexp.MustCompile(`(?:enable|disable) automation (.+)$`)

	reSetTemperature = regexp.MustCompile(`set (.+?) (?:temperature )?(?:to|at) (-?\d+)(?: ?°?[cf])?`)
	reSetMode        = regexp.MustCompile(`set ((?:.+ )?(?:ac|air conditioner)) (?:to|on) (cool|heat|fan|auto|dry)(?:ing)?(?: mode)?`)
	reSetEco         = regexp.MustCompile(`(?:turn|switch) (.+?) (?:to |on |into )?eco(?: mode)?`)
	reSchedule       = regexp.MustCompile(`schedule (.+?) to (turn on|turn off|start|stop) at (\d{1,2})[:.](\d{2})(?: ?(?:am|pm))?`)

	reTurnOn  = regexp.MustCompile(`turn on (.+)`)
	reTurnOff = regexp.MustCompile(`turn off (.+)`)

	reHelp     = regexp.MustCompile(`^(?:help|what can you do|commands|features|guide me|show me|teach me)\b`)
	reThanks   = regexp.MustCompile(`^(?:thanks|thank you|thx|ty|thankyou)[!.]*$`)
	reAck      = regexp.MustCompile(`^(?:ok|okay|k|sure|alright|got it|fine|yep|yes|yeah)[!.]*$`)
	reGreeting = regexp.MustCompile(`^(?:hi|hello|hey|greetings|yo|sup|hola)\b`)

	// reStatusFiller strips query words so only the device reference
	// remains. Applied to utterances already recognised as a status
	// question by keyword.
	reStatusFiller = regexp.MustCompile(`(status|check|state|how is|the|of)`)
)

var (
	statusKeywords = []string{"status", "check", "state", "how is"}
	listKeywords   = []string{"list", "show", "what", "devices"}
)

// Matcher classifies utterances into intents.
type Matcher struct{}

// NewMatcher returns a ready-to-use matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match classifies one utterance. The first matching rule wins; a text
// that satisfies no rule comes back as KindUnrecognized. Matching is
// case-insensitive and extracted slots are lower-cased.
func (m *Matcher) Match(message string) Intent {
	text := strings.ToLower(strings.TrimSpace(message))

	if reListAutomations.MatchString(text) {
		return Intent{Kind: KindListAutomations}
	}
	if g := reCreateAutomation.FindStringSubmatch(text); g != nil {
		return Intent{
			Kind:           KindCreateAutomation,
			AutomationName: strings.TrimSpace(g[1]),
			TriggerClause:  strings.TrimSpace(g[2]),
			ActionClause:   strings.TrimSpace(g[3]),
		}
	}
	if g := reDeleteAutomation.FindStringSubmatch(text); g != nil {
		return Intent{Kind: KindDeleteAutomation, AutomationName: strings.TrimSpace(g[1])}
	}
	if g := reToggleAutomation.FindStringSubmatch(text); g != nil {
		return Intent{Kind: KindToggleAutomation, AutomationName: strings.TrimSpace(g[1])}
	}

	if g := reSetTemperature.FindStringSubmatch(text); g != nil {
		if temp, err := strconv.Atoi(g[2]); err == nil {
			return Intent{
				Kind:        KindSetTemperature,
				DeviceRef:   strings.TrimSpace(g[1]),
				Temperature: temp,
			}
		}
	}
	if g := reSetMode.FindStringSubmatch(text); g != nil {
		return Intent{
			Kind:      KindSetMode,
			DeviceRef: strings.TrimSpace(g[1]),
			Mode:      g[2],
		}
	}
	if g := reSetEco.FindStringSubmatch(text); g != nil {
		return Intent{Kind: KindSetEcoMode, DeviceRef: strings.TrimSpace(g[1])}
	}
	if g := reSchedule.FindStringSubmatch(text); g != nil {
		hour, err := strconv.Atoi(g[3])
		if err == nil {
			return Intent{
				Kind:           KindSchedule,
				DeviceRef:      strings.TrimSpace(g[1]),
				ScheduleAction: normaliseScheduleAction(g[2]),
				ScheduleTime:   fmt.Sprintf("%02d:%s", hour, g[4]),
			}
		}
	}

	if g := reTurnOn.FindStringSubmatch(text); g != nil {
		return Intent{Kind: KindTurnOn, DeviceRef: strings.TrimSpace(g[1])}
	}
	if g := reTurnOff.FindStringSubmatch(text); g != nil {
		return Intent{Kind: KindTurnOff, DeviceRef: strings.TrimSpace(g[1])}
	}

	// Anchored conversational patterns come before the keyword scans
	// below; "what can you do" must reach help, not the device list.
	if reHelp.MatchString(text) {
		return Intent{Kind: KindHelp}
	}
	if reThanks.MatchString(text) {
		return Intent{Kind: KindThanks}
	}
	if reAck.MatchString(text) {
		return Intent{Kind: KindAcknowledge}
	}
	if reGreeting.MatchString(text) {
		return Intent{Kind: KindGreeting}
	}

	if containsAny(text, statusKeywords) {
		ref := strings.TrimSpace(reStatusFiller.ReplaceAllString(text, ""))
		return Intent{Kind: KindStatus, DeviceRef: ref}
	}
	if containsAny(text, listKeywords) {
		return Intent{Kind: KindListDevices}
	}

	return Intent{Kind: KindUnrecognized}
}

// normaliseScheduleAction maps the spoken verb onto a schedule action.
func normaliseScheduleAction(verb string) string {
	switch verb {
	case "turn on", "start":
		return "on"
	default:
		return "off"
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
