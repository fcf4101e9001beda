package main

import (
	"fmt"
	"os"
	"regexp"

	"divinetemple/progression"
	"divinetemple/shop"
)

var idRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func main() {
	bad := 0
	bad += lintAchievements()
	bad += lintQuests()
	bad += lintShop()

	if bad > 0 {
		fmt.Printf("%d catalog problems found\n", bad)
		os.Exit(1)
	}
	fmt.Println("catalogs OK")
}

func lintAchievements() int {
	bad := 0
	seen := map[string]bool{}
	for _, a := range progression.AllAchievements() {
		if !idRe.MatchString(a.ID) {
			fmt.Printf("achievement %q: malformed id\n", a.ID)
			bad++
		}
		if seen[a.ID] {
			fmt.Printf("achievement %q: duplicate id\n", a.ID)
			bad++
		}
		seen[a.ID] = true
		if a.Name == "" || a.Description == "" {
			fmt.Printf("achievement %q: missing name or description\n", a.ID)
			bad++
		}
		if a.XPReward <= 0 {
			fmt.Printf("achievement %q: non-positive xp reward %d\n", a.ID, a.XPReward)
			bad++
		}
		if a.Condition == nil {
			fmt.Printf("achievement %q: nil condition\n", a.ID)
			bad++
		}
	}
	return bad
}

func lintQuests() int {
	bad := 0
	seen := map[string]bool{}
	for _, board := range [][]progression.Quest{progression.AllDailyQuests(), progression.AllWeeklyQuests()} {
		for _, q := range board {
			if !idRe.MatchString(q.ID) {
				fmt.Printf("quest %q: malformed id\n", q.ID)
				bad++
			}
			if seen[q.ID] {
				fmt.Printf("quest %q: duplicate id\n", q.ID)
				bad++
			}
			seen[q.ID] = true
			if q.XPReward <= 0 {
				fmt.Printf("quest %q: non-positive xp reward %d\n", q.ID, q.XPReward)
				bad++
			}
			if q.Condition == nil {
				fmt.Printf("quest %q: nil condition\n", q.ID)
				bad++
			}
		}
	}
	return bad
}

func lintShop() int {
	bad := 0
	seen := map[string]bool{}
	for _, item := range shop.AllItems() {
		if !idRe.MatchString(item.ID) {
			fmt.Printf("item %q: malformed id\n", item.ID)
			bad++
		}
		if seen[item.ID] {
			fmt.Printf("item %q: duplicate id\n", item.ID)
			bad++
		}
		seen[item.ID] = true
		if item.Cost <= 0 {
			fmt.Printf("item %q: non-positive cost %d\n", item.ID, item.Cost)
			bad++
		}
		if item.Type == shop.TypeBooster && item.Duration <= 0 {
			fmt.Printf("item %q: booster without duration\n", item.ID)
			bad++
		}
		if item.Type != shop.TypeBooster && (item.Duration != 0 || item.Multiplier != 0) {
			fmt.Printf("item %q: booster fields on non-booster\n", item.ID)
			bad++
		}
	}
	return bad
}
