package skeleton

func children(root string, names ...string) []Part {
	out := []Part{{Name: root}}
	for _, n := range names {
		out = append(out, Part{Name: n, Parent: root})
	}
	return out
}

// DefaultArchetypes returns the built-in archetypes.
func DefaultArchetypes() []Archetype {
	return []Archetype{
		{
			Name: "quadruped",
			Parts: []Part{
				{Name: "body"},
				{Name: "neck", Parent: "body"},
				{Name: "head", Parent: "neck"},
				{Name: "front_legs", Parent: "body"},
				{Name: "back_legs", Parent: "body"},
				{Name: "tail", Parent: "body"},
			},
			Nouns: []string{
				"horse", "dog", "cat", "cow", "lion", "tiger", "deer", "wolf", "bear",
				"elephant", "giraffe", "zebra", "fox", "rabbit", "pony", "stallion",
				"mare", "mustang", "puppy", "kitten", "leopard", "cheetah", "panther",
				"moose", "rhino", "hippo", "camel",
			},
		},
		{
			Name: "biped",
			Parts: []Part{
				{Name: "torso"},
				{Name: "head", Parent: "torso"},
				{Name: "left_arm", Parent: "torso"},
				{Name: "right_arm", Parent: "torso"},
				{Name: "left_leg", Parent: "torso"},
				{Name: "right_leg", Parent: "torso"},
			},
			Nouns: []string{
				"person", "human", "man", "woman", "child", "robot", "soldier", "dancer",
				"astronaut", "knight", "warrior", "zombie", "skeleton", "angel", "devil",
				"ninja", "samurai", "pirate",
			},
		},
		{
			Name:  "bird",
			Parts: children("body", "head", "left_wing", "right_wing", "tail", "legs"),
			Nouns: []string{
				"bird", "eagle", "hawk", "owl", "parrot", "penguin", "flamingo", "crow",
				"raven", "dove", "sparrow", "hummingbird", "swan", "pelican", "toucan",
				"falcon", "vulture",
			},
		},
		{
			Name:  "fish",
			Parts: children("body", "head", "tail_fin", "dorsal_fin", "pectoral_fins"),
			Nouns: []string{
				"fish", "shark", "whale", "dolphin", "goldfish", "tuna", "swordfish",
				"ray", "seahorse", "octopus", "squid", "jellyfish",
			},
		},
		{
			Name:  "vehicle",
			Parts: children("body", "wheels", "windshield", "roof"),
			Nouns: []string{
				"car", "truck", "bus", "motorcycle", "van", "jeep", "taxi", "ambulance",
				"firetruck", "tractor",
			},
		},
		{
			Name:  "aircraft",
			Parts: children("fuselage", "left_wing", "right_wing", "tail", "engines"),
			Nouns: []string{"airplane", "jet", "helicopter", "plane", "biplane", "glider", "drone"},
		},
		{
			Name:  "furniture",
			Parts: children("seat", "backrest", "legs"),
			Nouns: []string{"chair", "stool", "bench", "throne", "couch", "sofa", "armchair", "recliner"},
		},
		{
			Name: "plant",
			Parts: []Part{
				{Name: "trunk"},
				{Name: "canopy", Parent: "trunk"},
				{Name: "roots", Parent: "trunk"},
			},
			Nouns: []string{"tree", "palm", "oak", "pine", "willow", "birch", "maple", "cactus", "bamboo", "bonsai"},
		},
		{
			Name: "building",
			Parts: []Part{
				{Name: "foundation"},
				{Name: "walls", Parent: "foundation"},
				{Name: "roof", Parent: "walls"},
				{Name: "windows", Parent: "walls"},
				{Name: "door", Parent: "walls"},
			},
			Nouns: []string{
				"house", "building", "castle", "church", "cabin", "temple", "tower",
				"lighthouse", "barn", "mosque", "cathedral",
			},
		},
		{
			Name:  "insect",
			Parts: children("thorax", "head", "abdomen", "wings", "legs"),
			Nouns: []string{
				"butterfly", "bee", "dragonfly", "beetle", "ant", "spider", "moth", "wasp",
				"grasshopper", "ladybug", "scorpion",
			},
		},
		{Name: Default, Parts: []Part{{Name: "body"}}},
	}
}
