// Command kindedexample serves shipment events filtered by their kinds. Run
// "go generate" first to generate the kind type.
package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:generate go run github.com/sublee/kinded/cmd/kinded .

// Event is something that happened to a shipment.
//
//kinded:derive(derive(Serialize, Deserialize), display = "kebab-case")
type Event interface{ isEvent() }

type Created struct {
	Shipment string `json:"shipment"`
}

//kinded:variant(rename = "picked-up")
type PickedUp struct {
	Shipment string `json:"shipment"`
	Courier  string `json:"courier"`
}

type Delivered struct {
	Shipment  string `json:"shipment"`
	Signature string `json:"signature"`
}

func (Created) isEvent()   {}
func (PickedUp) isEvent()  {}
func (Delivered) isEvent() {}

// record is an event with its kind. Kinds are encoded by their display names.
type record struct {
	Kind  EventKind `json:"kind"`
	Event Event     `json:"event"`
}

var events = []Event{
	Created{Shipment: "s-1"},
	PickedUp{Shipment: "s-1", Courier: "ana"},
	Created{Shipment: "s-2"},
	Delivered{Shipment: "s-1", Signature: "J. Doe"},
}

func main() {
	e := echo.New()

	// GET /kinds lists every event kind.
	e.GET("/kinds", func(c echo.Context) error {
		return c.JSON(http.StatusOK, EventKind(0).All())
	})

	// GET /events/:kind lists the events of a kind. The kind may be written in
	// any case convention, e.g. "delivered", "Delivered" or "DELIVERED".
	e.GET("/events/:kind", func(c echo.Context) error {
		kind, err := ParseEventKind(c.Param("kind"))
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}

		records := []record{}
		for _, ev := range events {
			if EventKindOf(ev) == kind {
				records = append(records, record{Kind: kind, Event: ev})
			}
		}
		return c.JSON(http.StatusOK, records)
	})

	e.Logger.Fatal(e.Start(":8080"))
}
