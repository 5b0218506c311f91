// Package neuroevo evolves fixed-topology feedforward neural networks with a
// genetic algorithm.
//
// Networks live in evo/nn: each Network is built either at random from a
// seeded stream or from a flat chromosome of biases and weights. The evo
// package breeds populations of such chromosomes using fitness-proportionate
// selection, uniform crossover and perturbation mutation. Every random draw
// comes from a caller-owned stream, so the same seed and the same starting
// population always give the same next generation.
//
// Basic usage:
//
//	// Load configuration
//	config, err := evo.LoadConfig("path/to/config.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	// Create a new population
//	pop, err := evo.NewPopulation(config)
//	if err != nil {
//		log.Fatalf("Error creating population: %v", err)
//	}
//
//	// Run for up to 100 generations with your fitness function
//	winner, err := pop.Run(evalOrganism, 100)
//	if err != nil {
//		log.Fatalf("Error running evolution: %v", err)
//	}
//	if winner != nil {
//		fmt.Println("Solution found!")
//	}
//
// The genetic algorithm can also be driven directly with any type that
// implements evo.Individual:
//
//	ga, _ := evo.New[*MyIndividual](evo.WithMutation(evo.PerturbMutation{}, 0.01, 0.3))
//	next, err := ga.Evolve(evo.NewRand(42), population, newIndividual)
package neuroevo
