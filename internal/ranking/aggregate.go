package ranking

import "github.com/akozadaev/go_lunch_recommender/internal/models"

// orderedCounter считает частоты с сохранением порядка первого появления ключа,
// поэтому при равенстве голосов побеждает значение, встретившееся раньше.
type orderedCounter struct {
	keys   []string
	counts map[string]int
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

// mode возвращает самое частое значение и число его появлений
func (c *orderedCounter) mode() (string, int) {
	best, bestCount := "", 0
	for _, k := range c.keys {
		if c.counts[k] > bestCount {
			best, bestCount = k, c.counts[k]
		}
	}
	return best, bestCount
}

// Aggregate сводит список пожеланий к доминирующим значениям кухни, голода, вкуса и настроения.
// Порядок входного списка важен: при равенстве побеждает первое встреченное значение.
// Для пустого списка возвращает ErrNoPreferences.
func Aggregate(prefs []models.Preference) (models.PreferenceSummary, error) {
	if len(prefs) == 0 {
		return models.PreferenceSummary{}, ErrNoPreferences
	}

	cuisine := newOrderedCounter()
	hunger := newOrderedCounter()
	flavor := newOrderedCounter()
	mood := newOrderedCounter()

	for _, p := range prefs {
		cuisine.add(p.FoodType)
		hunger.add(p.MealSize)
		flavor.add(p.FlavorPreference)
		mood.add(p.Mood)
	}

	summary := models.PreferenceSummary{Total: len(prefs)}
	summary.DominantCuisine, summary.CuisineVotes = cuisine.mode()
	summary.DominantHunger, _ = hunger.mode()
	summary.DominantFlavor, _ = flavor.mode()
	summary.DominantMood, _ = mood.mode()

	return summary, nil
}
