// Package automation owns the store of automation rules.
//
// A rule maps a trigger condition (time, temperature, motion and so on)
// to an ordered list of device actions. Rules are created, toggled and
// deleted through chat commands or the REST surface; nothing in this
// process executes them in the background.
package automation
