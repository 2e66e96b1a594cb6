package types

// GameSnapshot (server -> client, game channel; one per simulation tick):
//   ball: [number, number] // normalized to [-1, 1] per axis
//   player1: { name: string, score: number, paddle: Paddle }
//   player2: { name: string, score: number, paddle: Paddle }
//   game_active: boolean
//   winner: { name: string, score: number } // present only on the terminal snapshot
//
// Paddle:
//   top: number
//   bottom: number
//   center: number
//
// Snapshots replace each other wholesale; clients render the most recent one
// and discard the rest. A snapshot carrying winner ends the match.
