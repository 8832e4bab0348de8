package catalog

import "vocabdrill/internal/models"

// builtinEntries is the seed vocabulary: common Ukrainian nouns grouped by
// topic. Entries without categories only appear when no category filter is
// active.
var builtinEntries = []Entry{
	// Home
	{Word: "стіл", Meaning: "table", Gender: models.GenderMasculine, Categories: []string{"home"}},
	{Word: "стілець", Meaning: "chair", Gender: models.GenderMasculine, Categories: []string{"home"}},
	{Word: "вікно", Meaning: "window", Gender: models.GenderNeuter, Categories: []string{"home"}},
	{Word: "ліжко", Meaning: "bed", Gender: models.GenderNeuter, Categories: []string{"home"}},
	{Word: "книга", Meaning: "book", Gender: models.GenderFeminine, Categories: []string{"home", "school"}},
	{Word: "лампа", Meaning: "lamp", Gender: models.GenderFeminine, Categories: []string{"home"}},
	{Word: "дзеркало", Meaning: "mirror", Gender: models.GenderNeuter, Categories: []string{"home"}},
	{Word: "килим", Meaning: "carpet", Gender: models.GenderMasculine, Categories: []string{"home"}},
	{Word: "подушка", Meaning: "pillow", Gender: models.GenderFeminine, Categories: []string{"home"}},

	// Food
	{Word: "хліб", Meaning: "bread", Gender: models.GenderMasculine, Categories: []string{"food"}},
	{Word: "молоко", Meaning: "milk", Gender: models.GenderNeuter, Categories: []string{"food"}},
	{Word: "вода", Meaning: "water", Gender: models.GenderFeminine, Categories: []string{"food", "nature"}},
	{Word: "яблуко", Meaning: "apple", Gender: models.GenderNeuter, Categories: []string{"food"}},
	{Word: "сіль", Meaning: "salt", Gender: models.GenderFeminine, Categories: []string{"food"}},
	{Word: "сир", Meaning: "cheese", Gender: models.GenderMasculine, Categories: []string{"food"}},
	{Word: "чай", Meaning: "tea", Gender: models.GenderMasculine, Categories: []string{"food"}},
	{Word: "кава", Meaning: "coffee", Gender: models.GenderFeminine, Categories: []string{"food"}},
	{Word: "масло", Meaning: "butter", Gender: models.GenderNeuter, Categories: []string{"food"}},

	// Nature
	{Word: "сонце", Meaning: "sun", Gender: models.GenderNeuter, Categories: []string{"nature"}},
	{Word: "місяць", Meaning: "moon", Gender: models.GenderMasculine, Categories: []string{"nature"}},
	{Word: "зірка", Meaning: "star", Gender: models.GenderFeminine, Categories: []string{"nature"}},
	{Word: "річка", Meaning: "river", Gender: models.GenderFeminine, Categories: []string{"nature"}},
	{Word: "море", Meaning: "sea", Gender: models.GenderNeuter, Categories: []string{"nature"}},
	{Word: "ліс", Meaning: "forest", Gender: models.GenderMasculine, Categories: []string{"nature"}},
	{Word: "гора", Meaning: "mountain", Gender: models.GenderFeminine, Categories: []string{"nature"}},
	{Word: "небо", Meaning: "sky", Gender: models.GenderNeuter, Categories: []string{"nature"}},
	{Word: "дощ", Meaning: "rain", Gender: models.GenderMasculine, Categories: []string{"nature"}},

	// Animals
	{Word: "кіт", Meaning: "cat", Gender: models.GenderMasculine, Categories: []string{"animals"}},
	{Word: "собака", Meaning: "dog", Gender: models.GenderMasculine, Categories: []string{"animals"}},
	{Word: "риба", Meaning: "fish", Gender: models.GenderFeminine, Categories: []string{"animals", "food"}},
	{Word: "кінь", Meaning: "horse", Gender: models.GenderMasculine, Categories: []string{"animals"}},
	{Word: "корова", Meaning: "cow", Gender: models.GenderFeminine, Categories: []string{"animals"}},
	{Word: "птах", Meaning: "bird", Gender: models.GenderMasculine, Categories: []string{"animals"}},
	{Word: "теля", Meaning: "calf", Gender: models.GenderNeuter, Categories: []string{"animals"}},

	// City and people
	{Word: "місто", Meaning: "city", Gender: models.GenderNeuter, Categories: []string{"city"}},
	{Word: "вулиця", Meaning: "street", Gender: models.GenderFeminine, Categories: []string{"city"}},
	{Word: "будинок", Meaning: "building", Gender: models.GenderMasculine, Categories: []string{"city"}},
	{Word: "школа", Meaning: "school", Gender: models.GenderFeminine, Categories: []string{"city", "school"}},
	{Word: "друг", Meaning: "friend", Gender: models.GenderMasculine, Categories: []string{"people"}},
	{Word: "дитина", Meaning: "child", Gender: models.GenderFeminine, Categories: []string{"people"}},
	{Word: "вчитель", Meaning: "teacher", Gender: models.GenderMasculine, Categories: []string{"people", "school"}},
	{Word: "мати", Meaning: "mother", Gender: models.GenderFeminine, Categories: []string{"people"}},
	{Word: "серце", Meaning: "heart", Gender: models.GenderNeuter, Categories: []string{"people"}},

	// Uncategorized
	{Word: "слово", Meaning: "word", Gender: models.GenderNeuter},
	{Word: "час", Meaning: "time", Gender: models.GenderMasculine},
}
