package chat

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/hearthhome/hearth-core/internal/device"
)

// Selector picks one entry from a phrase pool of size n. The production
// selector is random; tests inject a fixed one to get deterministic
// replies.
type Selector interface {
	Pick(n int) int
}

// RandomSelector picks uniformly at random.
type RandomSelector struct{}

// Pick returns a random index in [0, n).
func (RandomSelector) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	return rand.Intn(n)
}

// FixedSelector always picks the same index, modulo pool size.
type FixedSelector int

// Pick returns the fixed index clamped to the pool.
func (f FixedSelector) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return int(f) % n
}

// Responder renders chat replies. Every reply with more than one
// acceptable phrasing draws from a pool via the Selector, so the
// assistant does not repeat itself word-for-word on every command.
type Responder struct {
	sel Selector
}

// NewResponder creates a Responder. A nil selector falls back to
// random selection.
func NewResponder(sel Selector) *Responder {
	if sel == nil {
		sel = RandomSelector{}
	}
	return &Responder{sel: sel}
}

func (r *Responder) pick(pool []string) string {
	return pool[r.sel.Pick(len(pool))]
}

// --- device control ---

var turnSuccessPool = []string{
	"%s is now %s! Anything else you need? 👍",
	"Done! %s turned %s. Like a boss! 😎",
	"Bam! %s is %s. What's next on your mind? ✨",
	"%s: %s! Easy peasy! Need anything else? 🌟",
}

// TurnSuccess confirms an on/off switch. action is "on" or "off".
func (r *Responder) TurnSuccess(name, action string) Result {
	return Result{Text: fmt.Sprintf(r.pick(turnSuccessPool), name, action), Type: TypeSuccess}
}

var deviceNotFoundPool = []string{
	`Hmm, I looked everywhere but couldn't find "%s". Did you mean something else? 🤔`,
	`"%s"? Never heard of it! Want to see a list of devices I know about? 🔍`,
	`Oops! I don't see "%s" anywhere. Maybe check the device list? Just ask me to 'list devices'! 😊`,
}

// DeviceNotFound reports a failed lookup during an on/off command.
func (r *Responder) DeviceNotFound(ref string) Result {
	return Result{Text: fmt.Sprintf(r.pick(deviceNotFoundPool), ref), Type: TypeError}
}

// GenericDeviceNotFound is the lookup failure used by eco, schedule and
// automation creation.
func (r *Responder) GenericDeviceNotFound(ref string) Result {
	return Result{
		Text: fmt.Sprintf(`I couldn't find a device called "%s". Want to see your devices? Just ask! 😊`, ref),
		Type: TypeError,
	}
}

// --- temperature and mode ---

var tempSuccessPool = []string{
	"Perfect! Set %s to %d°C. Keeping it comfy! 😎",
	"%s is now set to %d°C. Just right! 🌡️",
	"Temperature updated to %[2]d°C. Your comfort is my command! ✨",
}

// TempSuccess confirms a temperature change.
func (r *Responder) TempSuccess(name string, temp int) Result {
	return Result{Text: fmt.Sprintf(r.pick(tempSuccessPool), name, temp), Type: TypeSuccess}
}

// TempOutOfRange rejects a target outside the device's safe bounds.
func (r *Responder) TempOutOfRange(name string, temp, minTemp, maxTemp int) Result {
	return Result{
		Text: fmt.Sprintf("Whoa there! %d°C is outside the safe range for %s. Let's keep it between %d°C and %d°C! 🌡️",
			temp, name, minTemp, maxTemp),
		Type: TypeError,
	}
}

// TempUnsupported rejects a temperature command for a device without
// temperature controls.
func (r *Responder) TempUnsupported(name string) Result {
	return Result{
		Text: fmt.Sprintf(`Hmm, I can't set the temperature for "%s". It doesn't have temperature controls! 🤔`, name),
		Type: TypeError,
	}
}

// ACNotFound reports a failed lookup during a temperature or mode
// command.
func (r *Responder) ACNotFound(ref string) Result {
	return Result{
		Text: fmt.Sprintf(`Hmm, I couldn't find an AC called "%s". Want to see a list of your ACs? Just ask! 😊`, ref),
		Type: TypeError,
	}
}

var modeSuccessPool = []string{
	"Switched %s to %s mode. Like a boss! 😎",
	"%s is now in %s mode. Feeling good! ✨",
	"Changed to %[2]s mode. Your wish is my command! 🌬️",
}

// ModeSuccess confirms an operating mode change.
func (r *Responder) ModeSuccess(name, mode string) Result {
	return Result{Text: fmt.Sprintf(r.pick(modeSuccessPool), name, mode), Type: TypeSuccess}
}

// ModeUnsupported rejects a mode command for anything that is not an AC.
func (r *Responder) ModeUnsupported(name string) Result {
	return Result{
		Text: fmt.Sprintf(`Oops! "%s" isn't an AC. Only ACs have mode settings! 🤔`, name),
		Type: TypeError,
	}
}

// --- eco mode ---

var ecoSuccessPool = []string{
	"Eco mode activated for %s! Saving energy while keeping things just right! 🌱",
	"%s is now in eco mode. Mother Earth thanks you! 🌎",
	"Switched %s to eco-friendly settings. Every little bit helps! 💡",
}

// EcoSuccess confirms an eco preset was applied.
func (r *Responder) EcoSuccess(name string) Result {
	return Result{Text: fmt.Sprintf(r.pick(ecoSuccessPool), name), Type: TypeSuccess}
}

// EcoUnsupported rejects eco mode for non-thermal devices.
func (r *Responder) EcoUnsupported(name string) Result {
	return Result{
		Text: fmt.Sprintf(`Sorry, but "%s" doesn't support eco mode. Only temperature-controlled devices have this feature! 🌱`, name),
		Type: TypeError,
	}
}

// --- scheduling ---

var scheduleSuccessPool = []string{
	"Got it! I'll %[2]s %[1]s at %[3]s. You can count on me! ⏰",
	"%s scheduled to %s at %s. I'm on it! 📅",
	"Consider it done! %s will %s at %s. ✨",
}

// ScheduleSuccess confirms a stored schedule. action is "on" or "off".
func (r *Responder) ScheduleSuccess(name, action, at string) Result {
	return Result{
		Text: fmt.Sprintf(r.pick(scheduleSuccessPool), name, "turn "+action, at),
		Type: TypeSuccess,
	}
}

// --- automations ---

// AutomationSummary is one line of the automation listing.
type AutomationSummary struct {
	Name         string
	TriggerType  string
	TriggerValue string
	Actions      []string // rendered as "on Living Room Light"
	IsActive     bool
}

// AutomationsEmpty is shown when no rules exist yet.
func (r *Responder) AutomationsEmpty() Result {
	return Result{
		Text: "You don't have any automations set up yet. Want to create one? Just ask! 🤓",
		Type: TypeInfo,
	}
}

// AutomationList renders the numbered rule listing.
func (r *Responder) AutomationList(rules []AutomationSummary) Result {
	var b strings.Builder
	b.WriteString("Here are your automation rules! 🤖\n\n")
	for i, rule := range rules {
		status := "🔴 Inactive"
		if rule.IsActive {
			status = "🟢 Active"
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, rule.Name)
		fmt.Fprintf(&b, "   • When: %s %s\n", rule.TriggerType, rule.TriggerValue)
		fmt.Fprintf(&b, "   • Then: %s\n", strings.Join(rule.Actions, ", "))
		fmt.Fprintf(&b, "   • Status: %s\n\n", status)
	}
	return Result{Text: b.String(), Type: TypeInfo}
}

// CreateAutomationSuccess echoes the clauses back as confirmation.
func (r *Responder) CreateAutomationSuccess(name, trigger, action string) Result {
	return Result{
		Text: fmt.Sprintf("Perfect! I've created the automation \"%s\"! ✨\nWhen %s, I'll %s. You can count on me! 🤓",
			name, trigger, action),
		Type: TypeSuccess,
	}
}

// ActionClauseInvalid rejects a "then" clause that parses to no action.
func (r *Responder) ActionClauseInvalid() Result {
	return Result{
		Text: "I'm not sure what action you want me to take. Try something like 'turn on living room light'! 😊",
		Type: TypeError,
	}
}

// TriggerClauseInvalid rejects a "when" clause that parses to no trigger.
func (r *Responder) TriggerClauseInvalid() Result {
	return Result{
		Text: "I'm not sure when that should happen. Try 'when time is 7:00' or 'when temperature is 25'! 😊",
		Type: TypeError,
	}
}

// DuplicateAutomation rejects a rule name that is already taken.
func (r *Responder) DuplicateAutomation(name string) Result {
	return Result{
		Text: fmt.Sprintf(`You've already got an automation called "%s"! Pick a different name and we're good! 😊`, name),
		Type: TypeError,
	}
}

// AutomationNotFound reports a failed rule lookup.
func (r *Responder) AutomationNotFound(name string) Result {
	return Result{
		Text: fmt.Sprintf(`I couldn't find an automation called "%s". Want to see your automations? Just ask! 😊`, name),
		Type: TypeError,
	}
}

// DeleteAutomationSuccess confirms a rule removal.
func (r *Responder) DeleteAutomationSuccess(name string) Result {
	return Result{
		Text: fmt.Sprintf("Done! I've deleted the automation \"%s\"! 🗑️", name),
		Type: TypeSuccess,
	}
}

// ToggleAutomationSuccess reports the rule's new state.
func (r *Responder) ToggleAutomationSuccess(name string, active bool) Result {
	state := "disabled 🔴"
	if active {
		state = "enabled 🟢"
	}
	return Result{
		Text: fmt.Sprintf("Done! The automation \"%s\" is now %s! ✨", name, state),
		Type: TypeSuccess,
	}
}

// --- status ---

var statusThermalPool = []string{
	"%s is %s%s %s",
	"Your %s is %s%s ✨",
	"%s: %s%s 📅",
}

// StatusThermal describes a temperature-controlled device. note carries
// the next-schedule hint and may be empty; icon is only used by the
// first template.
func (r *Responder) StatusThermal(name, running, note, icon string) Result {
	if note != "" {
		note = " " + note
	}
	i := r.sel.Pick(len(statusThermalPool))
	var text string
	if i == 0 {
		text = fmt.Sprintf(statusThermalPool[0], name, running, note, icon)
	} else {
		text = fmt.Sprintf(statusThermalPool[i], name, running, note)
	}
	return Result{Text: text, Type: TypeInfo}
}

var statusOnPool = []string{
	"Let me check... %s is rocking and rolling! 🎵",
	"%s? Oh yeah, it's doing its thing! ✨",
	"Quick peek at %s - it's up and running! 🚀",
	"%s is currently on and ready to party! 🎉",
}

var statusOffPool = []string{
	"Let me check... %s is taking a break right now 😴",
	"%s? Oh yeah, it's chilling in off mode 🌙",
	"Quick peek at %s - it's powered down 💤",
	"%s is currently having some quiet time 🌟",
}

// StatusSimple describes a plain on/off device.
func (r *Responder) StatusSimple(name string, on bool) Result {
	pool := statusOffPool
	if on {
		pool = statusOnPool
	}
	return Result{Text: fmt.Sprintf(r.pick(pool), name), Type: TypeInfo}
}

var statusNotFoundPool = []string{
	`Hmm, can't seem to find "%s". Want me to show you what devices we have? 🔍`,
	`"%s"? Not ringing any bells! Let me know if you want to see our device list! 🎵`,
	`No "%s" in my records! Need a quick tour of what we've got? Just ask! 😊`,
}

// StatusNotFound reports a failed lookup during a status question.
func (r *Responder) StatusNotFound(ref string) Result {
	return Result{Text: fmt.Sprintf(r.pick(statusNotFoundPool), ref), Type: TypeError}
}

var askDevicePool = []string{
	"Which gadget are you curious about? I know all the juicy details! 😉",
	"I'd love to help! Just let me know which device you're wondering about! 🌟",
	"You've got me excited to share some device info! Which one interests you? ✨",
}

// StatusAskDevice prompts for a device when the question named none.
func (r *Responder) StatusAskDevice() Result {
	return Result{Text: r.pick(askDevicePool), Type: TypeInfo}
}

// --- device tour ---

var roomIntros = map[string][]string{
	"Living Room": {
		"Let's check out your awesome living room setup! 🎶",
		"Your living room is looking pretty techy! ✨",
	},
	"Bedroom": {
		"Here's what's keeping your bedroom cozy! 🛏",
		"Your bedroom's got some cool gadgets! 🌙",
	},
	"Kitchen": {
		"Kitchen gadgets, coming right up! 🍳",
		"Your smart kitchen is ready to cook! 🥘",
	},
	"Bathroom": {
		"Bathroom tech, at your service! 🛀",
		"Making your bathroom extra fancy! ✨",
	},
	"Study Room": {
		"Your study's looking super smart! 📚",
		"Ready to make studying awesome! 💻",
	},
	"Security": {
		"Keeping your home safe and sound! 🔒",
		"Your security squad is on duty! 📷",
	},
}

var statusDescOn = []string{
	"rockin' and rollin'",
	"doing its thing",
	"ready to party",
	"feeling energetic",
}

var statusDescOff = []string{
	"taking a quick nap",
	"chillin'",
	"on standby",
	"having a break",
}

var deviceIcons = map[device.Type]string{
	device.TypeLight:       "💡",
	device.TypeAC:          "❄️",
	device.TypeFan:         "🌀",
	device.TypeTV:          "📺",
	device.TypeCurtain:     "🪟",
	device.TypeSpeaker:     "🔊",
	device.TypeSecurity:    "🔒",
	device.TypeCamera:      "📹",
	device.TypeSensor:      "📡",
	device.TypeAppliance:   "🔌",
	device.TypeWaterHeater: "🚿",
	device.TypeFridge:      "🧊",
	device.TypeWineCooler:  "🍷",
	device.TypeFreezer:     "❄️",
}

func deviceIcon(t device.Type) string {
	if icon, ok := deviceIcons[t]; ok {
		return icon
	}
	return "⚡"
}

// DeviceTour renders the full walkthrough of every device grouped by
// room. Rooms appear in first-seen order so the tour is stable.
func (r *Responder) DeviceTour(devices []*device.Device) Result {
	var rooms []string
	byRoom := make(map[string][]*device.Device)
	for _, d := range devices {
		room := d.Room
		if room == "" {
			room = "Other"
		}
		if _, seen := byRoom[room]; !seen {
			rooms = append(rooms, room)
		}
		byRoom[room] = append(byRoom[room], d)
	}

	var b strings.Builder
	b.WriteString("Time for the grand tour of your smart home! 🏠\n\n")
	for _, room := range rooms {
		if intros, ok := roomIntros[room]; ok {
			b.WriteString(r.pick(intros))
		} else {
			fmt.Fprintf(&b, "Here's what we've got in the %s! ✨", room)
		}
		b.WriteString("\n")

		for _, d := range byRoom[room] {
			desc := r.pick(statusDescOff)
			if d.Status {
				desc = r.pick(statusDescOn)
			}
			if d.Type == device.TypeAC && d.Status && d.Temperature != nil {
				desc = fmt.Sprintf("%s (%s mode, %d°C)", desc, d.Mode, *d.Temperature)
			}
			fmt.Fprintf(&b, "%s %s is %s\n", deviceIcon(d.Type), d.Name, desc)
		}
	}
	b.WriteString("\nThat's the tour! Want to control any of these cool gadgets? Just let me know! 😎")

	return Result{Text: b.String(), Type: TypeInfo}
}

// --- conversational ---

const helpText = `Oh boy, let me tell you what I can do! 🎮

First off, I'm basically your home's bestie. I can:
- Give you a tour of all your devices (just say 'list devices' or 'what devices do I have')
- Turn stuff on and off (like 'turn on the bedroom light' or 'turn off kitchen fan')
- Check if things are working ('is the AC on?' or 'check bedroom light')
- Set things to specific settings ('set living room AC to 22' or 'set the ac to cool mode')

I can also handle automations! Try these:
- 'list automations' to see all your automation rules
- 'create automation morning lights when time is 7:00 then turn on living room light'
- 'create automation cool down when temperature is 25 then turn on living room ac'
- 'enable automation morning lights' or 'disable automation morning lights'
- 'delete automation morning lights' to remove an automation

Just talk to me like you'd talk to a friend - I'm pretty chill! Need anything specific? Just ask! 😊`

// Help lists everything the assistant understands.
func (r *Responder) Help() Result {
	return Result{Text: helpText, Type: TypeInfo}
}

var thanksPool = []string{
	"You're welcome! Always happy to help! 😊",
	"Anytime! That's what friends are for! ✨",
	"No problem at all! Need anything else? 😉",
	"My pleasure! Always here when you need me! 🤗",
	"Don't mention it! You're the best! 👍",
}

// Thanks acknowledges gratitude.
func (r *Responder) Thanks() Result {
	return Result{Text: r.pick(thanksPool), Type: TypeGreeting}
}

var ackPool = []string{
	"Great! Let me know if you need anything else! 😄",
	"Perfect! I'm here if you need more help! ✨",
	"Awesome! Don't hesitate to ask for anything! 😎",
	"Cool! Always ready to help! 👌",
	"Excellent! Just holler if you need me! 😉",
}

// Acknowledge closes out an "ok"-style reply.
func (r *Responder) Acknowledge() Result {
	return Result{Text: r.pick(ackPool), Type: TypeGreeting}
}

var greetingPool = []string{
	"Hey there! What's up? Ready to control some gadgets? 😊",
	"Yo! Your friendly home assistant here! What can I do for ya? 🌟",
	"Hey buddy! Hope you're having an awesome day! Need any help around the house? 🏠",
	"Well hello there! Ready to make your home do some magic? ✨",
}

// Greeting says hello back.
func (r *Responder) Greeting() Result {
	return Result{Text: r.pick(greetingPool), Type: TypeGreeting}
}

var unrecognisedPool = []string{
	"Whoops! I'm drawing a blank here. 😅 Want to know what I can do? Just say 'help'!",
	"Hey, I'm not quite sure what you mean. But I'm super helpful with home stuff - ask me for 'help' to see my tricks! 🎩",
	"That's a new one! 🤔 Mind trying again? Or say 'help' and I'll show you all the cool things I can do!",
	"I'm scratching my virtual head here! 😄 Let's start over - ask me for 'help' and I'll show you how I can make your home awesome!",
}

// Unrecognised is the fallback for input no rule matched.
func (r *Responder) Unrecognised() Result {
	return Result{Text: r.pick(unrecognisedPool), Type: TypeError}
}

// EmptyMessage rejects a blank utterance.
func (r *Responder) EmptyMessage() Result {
	return Result{
		Text: "Hey there! I didn't quite catch that. Mind saying it again? 😊",
		Type: TypeError,
	}
}

// InternalError hides any internal failure behind a generic apology.
func (r *Responder) InternalError() Result {
	return Result{
		Text: "Whoops! I ran into a bit of trouble. Mind trying again? 😊",
		Type: TypeError,
	}
}
