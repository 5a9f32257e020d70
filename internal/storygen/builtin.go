package storygen

import (
	"context"
	"log/slog"
)

type builtinStory struct {
	minLevel  int
	text      string
	questions string
}

// builtinStories are ordered by minLevel ascending.
var builtinStories = []builtinStory{
	{
		minLevel: 1,
		text: "Once upon a time, a little fox lived in the forest. Every morning he looked for berries. " +
			"One day he found a lost baby bird. The fox carried the bird to a tall tree. " +
			"The mother bird sang with joy. From then on, the fox and the birds were friends.",
		questions: `1. Where did the little fox live?
A. In the forest
B. By the sea
C. In a town
D. On a farm
Correct Answer: A

2. What did the fox find one day?
A. A red ball
B. A lost baby bird
C. A big apple
D. A blue hat
Correct Answer: B

3. How did the mother bird feel?
A. Angry
B. Sleepy
C. Full of joy
D. Scared
Correct Answer: C`,
	},
	{
		minLevel: 4,
		text: "Mia wanted to grow a sunflower taller than her dad. She planted a seed in a sunny corner of the garden. " +
			"Each day she gave it a cup of water and told it a joke. After two weeks a green shoot poked out of the soil. " +
			"By the end of summer the sunflower towered over the fence. Her dad laughed and said it was the tallest joke he had ever seen.",
		questions: `1. What did Mia want to grow?
A. A pumpkin
B. An apple tree
C. A sunflower
D. A rose bush
Correct Answer: C

2. What did Mia do each day besides watering?
A. Sang a song
B. Told it a joke
C. Read it a book
D. Painted it
Correct Answer: B

3. When did the green shoot appear?
A. After two days
B. After two weeks
C. At the end of summer
D. In winter
Correct Answer: B

4. How tall was the sunflower at the end?
A. Taller than the fence
B. As small as a cup
C. The same as Mia
D. Shorter than the grass
Correct Answer: A`,
	},
	{
		minLevel: 7,
		text: "Omar had never seen the ocean, so the trip to the coast felt like an expedition. " +
			"As the bus crested the final hill, a silver line stretched across the whole horizon. " +
			"At the beach he discovered that the sand was warm on top but cool underneath. " +
			"A crab scuttled sideways into a tide pool, and Omar crouched to watch it hide beneath a rock. " +
			"Before leaving, he filled a jar with seawater so his grandmother could smell the sea too.",
		questions: `1. Why did the trip feel like an expedition to Omar?
A. He was travelling alone
B. He had never seen the ocean
C. The bus was very old
D. It was raining all day
Correct Answer: B

2. What did Omar notice about the sand?
A. It was wet everywhere
B. It was black
C. It was warm on top and cool underneath
D. It was full of shells
Correct Answer: C

3. Where did the crab hide?
A. In Omar's bag
B. Under a towel
C. Beneath a rock in a tide pool
D. Behind the bus
Correct Answer: C

4. Why did Omar fill a jar with seawater?
A. To keep the crab
B. To clean his shoes
C. So his grandmother could smell the sea
D. To water plants
Correct Answer: C`,
	},
}

// BuiltinGenerator serves stories bundled with the app. It never fails
// for a level in range.
type BuiltinGenerator struct {
	logger *slog.Logger
}

// NewBuiltin creates a BuiltinGenerator.
func NewBuiltin(logger *slog.Logger) *BuiltinGenerator {
	return &BuiltinGenerator{logger: logger}
}

func (g *BuiltinGenerator) Name() string { return "builtin" }

// Generate returns the hardest bundled story whose minimum level is at most
// level, or the easiest story for lower levels.
func (g *BuiltinGenerator) Generate(_ context.Context, level int) (*Story, error) {
	pick := builtinStories[0]
	for _, s := range builtinStories {
		if level >= s.minLevel {
			pick = s
		}
	}
	return fromText(g.Name(), level, pick.text, pick.questions, g.logger)
}
