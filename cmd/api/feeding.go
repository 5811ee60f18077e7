package main

import (
	"errors"
	"fmt"
	"time"

	"pet-care/internal/domain/nutrition"
	"pet-care/internal/platform/i18n"

	"github.com/spf13/cobra"
)

type feedingFlags struct {
	species    string
	weight     float64
	birth      string
	today      string
	sterilized bool
	bcs        int
	activity   string
	condition  string
	kcal       float64
	lang       string
}

var ff feedingFlags

var feedingCmd = &cobra.Command{
	Use:   "feeding",
	Short: "Print a feeding recommendation without starting the server",
	Example: `  api feeding --species perro --weight 12.5 --birth 2022-04-01 --sterilized
  api feeding --species cat --weight 4 --birth 2014-01-10 --kcal 380 --lang en`,
	Args: cobra.NoArgs,
	RunE: runFeeding,
}

func init() {
	f := feedingCmd.Flags()
	f.StringVar(&ff.species, "species", "dog", "dog, cat, hamster, rabbit u otra")
	f.Float64Var(&ff.weight, "weight", 0, "peso en kg")
	f.StringVar(&ff.birth, "birth", "", "fecha de nacimiento YYYY-MM-DD")
	f.StringVar(&ff.today, "today", "", "fecha de referencia YYYY-MM-DD (default hoy)")
	f.BoolVar(&ff.sterilized, "sterilized", false, "esterilizado")
	f.IntVar(&ff.bcs, "bcs", 0, "condición corporal 1-9 (0 = sin evaluar)")
	f.StringVar(&ff.activity, "activity", "normal", "low, normal o high")
	f.StringVar(&ff.condition, "condition", "none", "none, renal o cardiac")
	f.Float64Var(&ff.kcal, "kcal", nutrition.DefaultFoodKcalPer100g, "kcal cada 100 g de alimento")
	f.StringVar(&ff.lang, "lang", "es", "es o en")
}

func runFeeding(cmd *cobra.Command, _ []string) error {
	p := nutrition.Profile{
		Species:    nutrition.ParseSpecies(ff.species),
		Sterilized: ff.sterilized,
		Activity:   nutrition.ParseActivity(ff.activity),
		Condition:  nutrition.ParseCondition(ff.condition),
	}
	if ff.weight != 0 {
		if !nutrition.ValidWeight(ff.weight) {
			return fmt.Errorf("--weight must be > 0 and <= %v", nutrition.MaxWeightKg)
		}
		p.WeightKg = &ff.weight
	}
	if ff.bcs != 0 {
		if ff.bcs < 1 || ff.bcs > 9 {
			return errors.New("--bcs must be 1-9")
		}
		p.BodyConditionScore = &ff.bcs
	}
	kcal := ff.kcal
	if kcal != 0 && !nutrition.ValidFoodKcal(kcal) {
		return fmt.Errorf("--kcal must be 0 or between %v and %v", nutrition.MinFoodKcalPer100g, nutrition.MaxFoodKcalPer100g)
	}
	p.FoodKcalPer100g = &kcal

	if ff.birth != "" {
		t, err := time.Parse("2006-01-02", ff.birth)
		if err != nil {
			return fmt.Errorf("--birth: %w", err)
		}
		p.BirthDate = &t
	}

	today := time.Now()
	if ff.today != "" {
		t, err := time.Parse("2006-01-02", ff.today)
		if err != nil {
			return fmt.Errorf("--today: %w", err)
		}
		today = t
	}

	tr := i18n.New(ff.lang)
	out := cmd.OutOrStdout()

	span, ok := nutrition.AgeOf(p.BirthDate, today)
	fmt.Fprintf(out, "%s %s\n", p.Species.Icon(), tr.Age(span, ok))

	rec, err := nutrition.NewAdvisorAt(today).Advise(p)
	if errors.Is(err, nutrition.ErrInsufficientData) {
		fmt.Fprintln(out, tr.Missing())
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, tr.FeedingSummary(rec))

	if trend, ok := nutrition.PlanWeightTrend(p.WeightKg); ok {
		fmt.Fprintln(out, tr.WeightTrend(trend))
	}
	return nil
}
