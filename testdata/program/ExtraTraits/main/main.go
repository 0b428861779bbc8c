package main

import (
	"encoding/json"
	"fmt"
	"slices"
)

//kinded:derive(kind = Suit, derive(Hash, PartialOrd, Ord, Serialize, Deserialize), display = "kebab-case")
type Card interface{ isCard() }

type Spade struct{ Rank int }
type Heart struct{ Rank int }
type RedJoker struct{}

func (Spade) isCard()    {}
func (Heart) isCard()    {}
func (RedJoker) isCard() {}

type Hand struct {
	Lead  Suit         `json:"lead"`
	Count map[Suit]int `json:"count"`
}

func main() {
	hand := Hand{
		Lead:  SuitOf(RedJoker{}),
		Count: map[Suit]int{SuitSpade: 2, SuitRedJoker: 1},
	}
	data, err := json.Marshal(hand)
	fmt.Println(string(data), err)

	var decoded Hand
	err = json.Unmarshal([]byte(`{"lead":"HEART","count":{"spade":3,"RedJoker":1}}`), &decoded)
	fmt.Println(decoded.Lead, decoded.Count[SuitSpade], decoded.Count[SuitRedJoker], err)

	err = json.Unmarshal([]byte(`{"lead":"club"}`), &decoded)
	fmt.Println(err)

	suits := []Suit{SuitRedJoker, SuitSpade, SuitHeart}
	slices.SortFunc(suits, Suit.Compare)
	fmt.Println(suits)
	fmt.Println(SuitSpade.Less(SuitHeart), SuitHeart.Less(SuitSpade))
}
