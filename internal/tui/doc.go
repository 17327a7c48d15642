// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui implements the interactive board: a search box above a grid
// of group cards. Built on bubbletea, it drives a [session.Session] for
// dispatching questions and a [drag.Controller] for moving tiles between
// groups with either the keyboard or the mouse.
//
// Dispatches run as commands off the event loop and come back as
// messages; every board mutation happens inside Update.
//
//	[search box] --Enter--> session.Dispatch (command)
//	                              |
//	                    dispatchResultMsg
//	                              v
//	[board grid] <--- session.Apply / drag.Release / rename / remove
package tui
